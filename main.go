/*
Copyright © 2025 Halcyon Authors
*/
package main

import (
	"github.com/halcyonhq/halcyon/cmd"
	"github.com/halcyonhq/halcyon/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
