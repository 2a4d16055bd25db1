package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vet-procedures/internal/config"
	"vet-procedures/internal/domain/reports"
	"vet-procedures/internal/platform/catalogclient"
	"vet-procedures/internal/platform/currency"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		patient reports.PatientInfo
		items   []string
		out     string
		local   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Genera el relatório PDF de una selección",
		Example: `  vetproc report --nome Rex --tipo Canino --item 101:2 --item 201
  vetproc report --local --nome Mia --item 301 --out mia.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqItems, err := parseItems(items)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var (
				buf      bytes.Buffer
				fileName string
			)
			if local {
				fileName, err = localReport(cmd, cfg, patient, reqItems, &buf)
			} else {
				var client *catalogclient.Client
				client, err = catalogclient.New(cfg.APIURL, cfg.APIOrigin, 0)
				if err == nil {
					fileName, err = client.Report(cmd.Context(), patient, reqItems, &buf)
				}
			}
			if err != nil {
				if fields, ok := reports.AsValidation(err); ok {
					return fmt.Errorf("relatório inválido: %v", fields)
				}
				return err
			}

			if out == "" {
				out = fileName
			}
			if out == "" {
				out = reports.FileName(patient, time.Now())
			}
			if err := os.WriteFile(filepath.Clean(out), buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out, buf.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&patient.Name, "nome", "", "nome do paciente")
	cmd.Flags().StringVar(&patient.Species, "tipo", "", "tipo/espécie")
	cmd.Flags().StringVar(&patient.Age, "idade", "", "idade")
	cmd.Flags().StringArrayVar(&items, "item", nil, "código[:quantidade], repetible")
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo de salida (default: nombre sugerido)")
	cmd.Flags().BoolVar(&local, "local", false, "genera sin servidor, leyendo el catálogo directo (DB o demo)")
	return cmd
}

// localReport arma la selección contra el catálogo propio y renderiza en proceso.
func localReport(cmd *cobra.Command, cfg *config.Config, patient reports.PatientInfo, items []catalogclient.ReportItem, buf *bytes.Buffer) (string, error) {
	if err := reports.CheckLimits(items); err != nil {
		return "", err
	}
	if fields := reports.Validate(patient, reports.RequestedQuantity(items)); fields != nil {
		return "", &reports.ValidationError{Fields: fields}
	}

	log := newLogger(cfg)
	app, cleanup, err := wireApp(cmd.Context(), cfg, log)
	if err != nil {
		return "", err
	}
	defer cleanup()

	res, err := app.Catalog.Catalog(cmd.Context())
	if err != nil {
		return "", err
	}

	sel, err := reports.BuildSelection(items, res.Items)
	if err != nil {
		return "", err
	}

	doc, err := app.Reports.Generate(cmd.Context(), patient, sel, buf)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d itens, total %s\n", doc.TotalItems, currency.FormatBRL(doc.TotalValue))
	return doc.FileName, nil
}

// parseItems acepta "101" o "101:2".
func parseItems(raw []string) ([]catalogclient.ReportItem, error) {
	out := make([]catalogclient.ReportItem, 0, len(raw))
	for _, s := range raw {
		codeStr, countStr, hasCount := strings.Cut(strings.TrimSpace(s), ":")
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			return nil, fmt.Errorf("item inválido %q", s)
		}
		count := 1
		if hasCount {
			if count, err = strconv.Atoi(countStr); err != nil || count < 1 {
				return nil, fmt.Errorf("quantidade inválida em %q", s)
			}
		}
		out = append(out, catalogclient.ReportItem{Code: code, Count: count})
	}
	return out, nil
}
