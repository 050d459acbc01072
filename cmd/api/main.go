// Forkful API server entry point.
package main

import (
	"github.com/forkful/forkful/internal/infrastructure/container"
)

func main() {
	container.New().Run()
}
