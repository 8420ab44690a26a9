//go:build ignore

// Regenerates zones.go from the host tzdata. Run from the tzdir directory:
//
//	go run generate/gendirectory.go
package main

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const zoneinfoDir = "/usr/share/zoneinfo"

func main() {
	names := readZoneNames(zoneinfoDir)

	w, err := os.Create("zones.go")
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	w.WriteString(`// Code generated by tzdir/generate. DO NOT EDIT.

package tzdir

// ianaZoneNames is the canonical IANA zone identifier list the directory is
// built from, including the legacy aliases the exclusion list later removes.
var ianaZoneNames = []string{
`)

	for _, name := range names {
		w.WriteString("\t\"" + name + "\",\n")
	}

	w.WriteString("}\n")
}

func readZoneNames(root string) []string {
	var names []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		name, _ := filepath.Rel(root, path)
		if skipEntry(name) {
			return nil
		}

		names = append(names, name)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	sort.Strings(names)
	return names
}

func skipEntry(name string) bool {
	switch name {
	case "localtime", "posixrules", "leapseconds", "tzdata.zi", "zone.tab", "zone1970.tab", "zonenow.tab", "iso3166.tab", "leap-seconds.list", "SECURITY":
		return true
	}

	return strings.HasPrefix(name, "posix/") || strings.HasPrefix(name, "right/")
}
