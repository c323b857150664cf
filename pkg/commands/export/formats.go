package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type encoder func(vars []string, rows []Row) (string, error)

var encoders = map[string]encoder{
	"csv":    encodeCSV,
	"plain":  encodePlain,
	"json":   encodeJSON,
	"yaml":   encodeYAML,
	"toml":   encodeTOML,
	"xml":    encodeXML,
	"dotenv": encodeDotenv,
}

// encodeCSV writes a header of variable names then one record per row
func encodeCSV(vars []string, rows []Row) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(vars); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(row.Values); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// encodePlain writes "name"="value" lines, rows separated by a blank line
func encodePlain(vars []string, rows []Row) (string, error) {
	blocks := make([]string, len(rows))
	for i, row := range rows {
		lines := make([]string, len(vars))
		for j, name := range vars {
			lines[j] = fmt.Sprintf("%q=%q", name, row.Values[j])
		}
		blocks[i] = strings.Join(lines, "\n") + "\n"
	}
	return strings.Join(blocks, "\n"), nil
}

// encodeJSON writes an array of objects, one per line, keeping column order
func encodeJSON(vars []string, rows []Row) (string, error) {
	var b strings.Builder
	b.WriteString("[\n")
	for i, row := range rows {
		fields := make([]string, len(vars))
		for j, name := range vars {
			k, err := json.Marshal(name)
			if err != nil {
				return "", err
			}
			v, err := json.Marshal(row.Values[j])
			if err != nil {
				return "", err
			}
			fields[j] = string(k) + ":" + string(v)
		}
		b.WriteString("  {" + strings.Join(fields, ",") + "}")
		if i < len(rows)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return b.String(), nil
}

// encodeYAML writes a sequence of mappings. A node tree is used so keys
// keep column order.
func encodeYAML(vars []string, rows []Row) (string, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, name := range vars {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: row.Values[j]},
			)
		}
		seq.Content = append(seq.Content, m)
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{seq}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// encodeTOML writes an array of tables named rows
func encodeTOML(vars []string, rows []Row) (string, error) {
	doc := struct {
		Rows []map[string]string `toml:"rows"`
	}{Rows: make([]map[string]string, len(rows))}
	for i, row := range rows {
		doc.Rows[i] = rowMap(vars, row)
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// encodeXML writes <rows><row job=".."><var name="..">value</var></row></rows>
func encodeXML(vars []string, rows []Row) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rows")
	for _, row := range rows {
		el := root.CreateElement("row")
		el.CreateAttr("job", row.Job.Name)
		for j, name := range vars {
			v := el.CreateElement("var")
			v.CreateAttr("name", name)
			v.SetText(row.Values[j])
		}
	}
	doc.Indent(2)
	return doc.WriteToString()
}

// encodeDotenv writes one env block per row, rows separated by a blank line
func encodeDotenv(vars []string, rows []Row) (string, error) {
	blocks := make([]string, len(rows))
	for i, row := range rows {
		block, err := godotenv.Marshal(rowMap(vars, row))
		if err != nil {
			return "", err
		}
		blocks[i] = block + "\n"
	}
	return strings.Join(blocks, "\n"), nil
}

func rowMap(vars []string, row Row) map[string]string {
	m := make(map[string]string, len(vars))
	for j, name := range vars {
		m[name] = row.Values[j]
	}
	return m
}
