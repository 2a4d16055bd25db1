package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"vet-procedures/internal/config"
	"vet-procedures/internal/domain/procedures"
	"vet-procedures/internal/platform/catalogclient"
	"vet-procedures/internal/platform/currency"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var (
		filter catalogclient.Filter
		search string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Consulta el catálogo de un servidor corriendo (API_URL)",
		Long:  "Sin --plano lista los planos. Con --plano lista los sub-grupos. Con --plano y --sub-grupo lista los procedimientos. Con --all trae el catálogo completo.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client, err := catalogclient.New(cfg.APIURL, cfg.APIOrigin, 0)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			all, _ := cmd.Flags().GetBool("all")
			if all {
				page, err := client.Catalog(cmd.Context())
				if err != nil {
					return err
				}
				if page.Warning != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", page.Warning)
				}
				return printProcedures(out, procedures.Search(page.Items, search))
			}

			if filter.SubGroup != "" && filter.Plan == "" {
				return fmt.Errorf("--sub-grupo requiere --plano")
			}

			res, err := catalogclient.NewCascade(client).Resolve(cmd.Context(), filter)
			if err != nil {
				return err
			}
			switch {
			case filter.Plan == "":
				return printList(out, res.Plans)
			case filter.SubGroup == "":
				return printList(out, res.SubGroups)
			default:
				return printProcedures(out, procedures.Search(res.Procedures, search))
			}
		},
	}

	cmd.Flags().StringVar(&filter.Plan, "plano", "", "plano")
	cmd.Flags().StringVar(&filter.SubGroup, "sub-grupo", "", "sub-grupo (requiere --plano)")
	cmd.Flags().StringVar(&search, "search", "", "filtra por nombre (sin distinguir mayúsculas)")
	cmd.Flags().Bool("all", false, "catálogo completo")
	return cmd
}

func printList(w io.Writer, values []string) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

func printProcedures(w io.Writer, items []procedures.Procedure) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COD\tNOME\tPLANO\tSUB-GRUPO\tPREÇO")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			p.Code, p.Name, p.Plan, strings.TrimSpace(p.SubGroup), currency.FormatBRL(p.PriceValue()))
	}
	return tw.Flush()
}
