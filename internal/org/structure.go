package org

import (
	"fmt"
	"io"
	"strings"
)

func (o *Organization) PrintStructure(w io.Writer) error {
	if _, err := fmt.Fprintln(w, o.String()); err != nil {
		return err
	}
	for _, department := range o.departments {
		if _, err := fmt.Fprintf(w, "  %s\n", department); err != nil {
			return err
		}
		for _, employee := range department.employees {
			if _, err := fmt.Fprintf(w, "    - %s (%s)\n", employee.name, employee.position); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Organization) Structure() string {
	var b strings.Builder
	_ = o.PrintStructure(&b)
	return b.String()
}
