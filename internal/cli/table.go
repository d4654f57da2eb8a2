package cli

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
)

const maxTitleWidth = 60

func newTable() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxTitleWidth
	return tbl
}

func writeTable(out io.Writer, tbl *uitable.Table) error {
	_, err := fmt.Fprintln(out, tbl)
	return err
}
