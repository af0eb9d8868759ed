package cmd

import (
	"fmt"

	"github.com/illarion/sealnote/internal/core"
	"github.com/illarion/sealnote/internal/logger"
)

// Init creates a new .sealnote store
func Init() {
	box, err := core.Init(Dir(), core.WithLogger(logger.FromEnv(Verbose)))
	if err != nil {
		HandleError(err)
	}
	defer box.Close()

	fmt.Printf("✓ Initialized %s\n", box.Path())
}
