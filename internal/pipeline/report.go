package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"go-user-enrichment/internal/model"
	"go-user-enrichment/pkg/utils"
)

// WriteReport writes one result row per processed ID to the report CSV
func WriteReport(path string, rows []model.RowOutcome) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM so Excel renders the pt-BR accents correctly
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"user_id", "status", "stage", "message"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.UserID),
			row.Status,
			row.Stage,
			utils.CleanText(row.Message),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// PrintUsersTable shows a readable summary of the fetched users with
// balances in pt-BR currency and the latest news wrapped to width
func PrintUsersTable(users []*model.User, wrapWidth int) {
	sorted := make([]*model.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNome\tAgência\tConta\tSaldo\tLimite\tQtd News\tÚltima News")

	for _, u := range sorted {
		agencia, numero := "", ""
		balanco, limite := 0.0, 0.0
		if u.Conta != nil {
			agencia, numero = u.Conta.Agencia, u.Conta.Numero
			balanco, limite = u.Conta.Balanco, u.Conta.Limite
		}

		wrapped := utils.WrapText(utils.CleanText(u.LastNews()), wrapWidth)
		lines := strings.Split(wrapped, "\n")

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			u.ID, u.Nome, agencia, numero,
			utils.FormatBRL(balanco), utils.FormatBRL(limite),
			len(u.News), lines[0])
		// Continuation lines keep the news column aligned
		for _, l := range lines[1:] {
			fmt.Fprintf(tw, "\t\t\t\t\t\t\t%s\n", l)
		}
	}

	tw.Flush()
}

// PrintSummary prints the final success/failure counts
func PrintSummary(summary model.RunSummary) {
	utils.Done(fmt.Sprintf("Atualizações concluídas: %d/%d", summary.Succeeded, summary.Total))
	if summary.Failed > 0 {
		utils.Warn(fmt.Sprintf("Linhas com falha: %d", summary.Failed))
	}
	utils.Done(fmt.Sprintf("Abra o relatório no Excel: %s", summary.ReportPath))
}
