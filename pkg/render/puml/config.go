package puml

import (
	"bufio"
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// ConfigFileName is the namespace configuration file at the output root.
const ConfigFileName = "_namespaces.puml"

const configHeader = `' Shared diagram configuration. This file is never overwritten, so it is the
' place for skinparams and per-namespace styling.
'
' The first block is included by every generated diagram. Each named block
' below is included by the diagrams of that namespace and of every namespace
' nested in it, outermost first.

@startuml
@enduml
`

// ConfigFile returns a fresh configuration file with one section per prefix.
func ConfigFile(prefixes []string) []byte {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	appendSections(&buf, sortedUnique(prefixes))
	return buf.Bytes()
}

// MergeConfig extends an existing configuration file with sections for the
// prefixes it does not have yet. Existing content is kept byte for byte.
// The boolean reports whether anything was appended. An empty existing file
// is treated as missing.
func MergeConfig(existing []byte, prefixes []string) ([]byte, bool) {
	if len(bytes.TrimSpace(existing)) == 0 {
		return ConfigFile(prefixes), true
	}
	have := make(map[string]bool)
	for _, id := range ConfigSections(existing) {
		have[id] = true
	}
	var missing []string
	for _, p := range sortedUnique(prefixes) {
		if !have[p] {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return existing, false
	}

	var buf bytes.Buffer
	buf.Write(existing)
	if !bytes.HasSuffix(existing, []byte("\n")) {
		buf.WriteString("\n")
	}
	appendSections(&buf, missing)
	return buf.Bytes(), true
}

// ConfigSections returns the ids of the named blocks in a configuration
// file, in file order.
func ConfigSections(data []byte) []string {
	var ids []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, "@startuml(id=")
		if !ok {
			continue
		}
		if id, ok := strings.CutSuffix(rest, ")"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func appendSections(buf *bytes.Buffer, prefixes []string) {
	for _, p := range prefixes {
		fmt.Fprintf(buf, "\n@startuml(id=%s)\n@enduml\n", p)
	}
}

func sortedUnique(items []string) []string {
	out := slices.DeleteFunc(slices.Clone(items), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	slices.Sort(out)
	return slices.Compact(out)
}
