package cli

import (
	"github.com/spf13/cobra"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/app"
)

var watchGlob string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically re-forecast a directory of workbooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Watch(cmd.Context(), app.WatchOptions{Glob: watchGlob})
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchGlob, "glob", "", "Workbook glob to watch (defaults to config watch.input_glob)")
}
