package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"rtable/pkg/dom"
	"rtable/pkg/responsive"
)

type columnsCommandParams struct {
	pageParams
	matrix bool
}

var columnsParams = columnsCommandParams{}

var columnsCommand = &cobra.Command{
	Use:   "columns <file|url>",
	Short: "Print the logical columns of the responsive tables in an HTML file",
	Long: `Print the logical columns of the responsive tables in an HTML file.

For each attached table the 'columns' command lists every logical column
with its header label, the number of body cells it owns and whether it is
collapsed at the given width, followed by the span matrix: one line per
body row with the colspan of the cell starting at each grid position, or
0 where a wider cell to the left covers the position.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return columns(columnsParams, args[0], cmd.OutOrStdout(), log)
	},
}

func init() {
	addPageFlags(columnsCommand, &columnsParams.pageParams)
	columnsCommand.Flags().BoolVar(&columnsParams.matrix, "matrix", true, "print the span matrix")
	RootCommand.AddCommand(columnsCommand)
}

func columns(params columnsCommandParams, filename string, out io.Writer, log logrus.FieldLogger) error {
	p, err := loadPage(params.pageParams, filename, log)
	if err != nil {
		return err
	}
	for i, t := range p.Tables() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		s := t.Settings()
		fmt.Fprintf(out, "table %s: %d columns, start %s, direction %s\n",
			tableName(t, i), len(t.Columns()), s.Start, s.CollapseDirection)
		printColumns(out, t)
		if params.matrix {
			printMatrix(out, t)
		}
	}
	return nil
}

func tableName(t *responsive.Table, index int) string {
	if id, ok := dom.GetAttribute(t.Node(), "id"); ok && id != "" {
		return "#" + id
	}
	return strconv.Itoa(index)
}

func printColumns(out io.Writer, t *responsive.Table) {
	table := newTable(out, "Column", "Header", "Cells", "Collapsed")
	for i, c := range t.Columns() {
		table.Append([]string{
			strconv.Itoa(i),
			headerLabel(c, t.Settings()),
			strconv.Itoa(len(c.Cells())),
			strconv.FormatBool(c.Collapsed()),
		})
	}
	table.Render()
}

func printMatrix(out io.Writer, t *responsive.Table) {
	m := t.SpanMatrix()
	table := newTable(out, "Row", "Spans")
	for i, row := range t.Rows() {
		entries := m.Row(row.Node)
		spans := make([]string, len(entries))
		for k, e := range entries {
			spans[k] = strconv.Itoa(e)
		}
		table.Append([]string{strconv.Itoa(i), strings.Join(spans, " ")})
	}
	table.Render()
}

// headerLabel is the whitespace-normalised text of a column's header,
// without its trigger.
func headerLabel(c *responsive.Column, s responsive.Settings) string {
	var sb strings.Builder
	dom.Walk(c.Header(), func(n *html.Node) bool {
		if dom.HasClass(n, s.ExpandTriggerClass) || dom.HasClass(n, s.CollapseTriggerClass) {
			return false
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	label := strings.Join(strings.Fields(sb.String()), " ")
	if label == "" {
		return "-"
	}
	return label
}

func newTable(w io.Writer, keys ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	aligns := make([]int, len(keys))
	for i := range keys {
		aligns[i] = tablewriter.ALIGN_LEFT
	}
	table.SetHeader(keys)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnAlignment(aligns)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	return table
}
