package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Vet Procedures API
// @version 1.0
// @description Catálogo de procedimentos veterinários com filtros em cascata e relatório em PDF.
// @BasePath /
// @schemes http https

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vetproc",
		Short:         "Catálogo de procedimentos veterinários",
		Long:          "vetproc levanta la API del catálogo (serve), consulta un servidor corriendo (catalog) y genera el relatório PDF (report).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newCatalogCmd(),
		newReportCmd(),
	)
	return root
}
