package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awidegreen/pack/pkg/config"
	"github.com/awidegreen/pack/pkg/logger"
	"github.com/awidegreen/pack/pkg/registry"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.NewPaths()
			if err != nil {
				return err
			}
			log := logger.New(verbosity)

			packs, err := registry.NewStore(paths, log).Load()
			if err != nil {
				return err
			}
			if len(packs) == 0 {
				printInfo("no plugins registered")
				return nil
			}
			for _, p := range packs {
				fmt.Println(p)
			}
			return nil
		},
	}
}
