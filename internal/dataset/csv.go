// Package dataset loads the organization roster from CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/evanmarlow/givesite/internal/model"
)

// classRank orders giving scopes for presentation: Local first, then
// National, then Global. Unknown classes sort after all known ones,
// preserving their input order.
func classRank(class string) int {
	switch class {
	case "Local":
		return 0
	case "National":
		return 1
	case "Global":
		return 2
	default:
		return 99
	}
}

// Load reads the roster CSV at path. The first non-blank line is the header;
// rows with an empty Org column are skipped. Rows come back sorted by class
// rank, stable within a class. A missing file is an error — the roster is
// the one input the build cannot proceed without.
func Load(path string) ([]model.Organization, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["Org"]; !ok {
		return nil, fmt.Errorf("roster %s has no Org column", path)
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var orgs []model.Organization
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		if field(record, "Org") == "" {
			continue
		}
		orgs = append(orgs, model.Organization{
			Name:             field(record, "Org"),
			Website:          field(record, "Website"),
			Amount:           field(record, "Amount"),
			Reason:           field(record, "Reason"),
			Class:            field(record, "Class"),
			Why:              field(record, "Why"),
			EIN:              field(record, "EIN"),
			CharityNavigator: field(record, "CharityNavigator"),
			GuideStar:        field(record, "GuideStar"),
			Summary:          field(record, "Summary"),
		})
	}

	sort.SliceStable(orgs, func(i, j int) bool {
		return classRank(orgs[i].Class) < classRank(orgs[j].Class)
	})
	return orgs, nil
}
