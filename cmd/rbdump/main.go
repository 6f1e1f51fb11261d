// Command rbdump inspects a buffer against a schema file without any
// generated accessor code: point it at a YAML or JSON schema and a binary
// buffer, and it prints each field of the root object (nested tables
// inline, vectors and unions as placeholders), or verifies the buffer's
// offsets stay in bounds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	reflectbuf "github.com/rawbytedev/reflectbuf"
	"github.com/rawbytedev/reflectbuf/schema"
)

func main() {
	schemaPath := flag.String("schema", "", "path to a .yaml/.yml or .json schema file (required)")
	bufPath := flag.String("buf", "", "path to the binary buffer to inspect (required)")
	cachePath := flag.String("cache", "", "path to a compiled schema cache; read if present, written otherwise")
	verifyOnly := flag.Bool("verify", false, "only check the buffer's offsets stay in bounds, print nothing else")
	resizeString := flag.String("resize-string", "", "field=value: resize a root string field in place and rewrite -buf")
	resizeVectorField := flag.String("resize-vector-field", "", "root vector field to resize, used with -resize-vector-len")
	resizeVectorLen := flag.Int("resize-vector-len", -1, "new element count for -resize-vector-field")
	resizeVectorElemSize := flag.Int("resize-vector-elem-size", 4, "element byte width for -resize-vector-field")
	flag.Parse()

	if *schemaPath == "" || *bufPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	sch, err := loadSchemaCached(*schemaPath, *cachePath)
	if err != nil {
		log.Fatalf("rbdump: loading schema: %v", err)
	}

	buf, err := os.ReadFile(*bufPath)
	if err != nil {
		log.Fatalf("rbdump: reading buffer: %v", err)
	}

	if err := reflectbuf.Verify(sch, buf); err != nil {
		log.Fatalf("rbdump: buffer failed verification: %v", err)
	}
	if *verifyOnly {
		fmt.Println("ok")
		return
	}

	rec := reflectbuf.Root(sch, buf)

	if *resizeString != "" || *resizeVectorField != "" {
		out, err := applyResize(rec, *resizeString, *resizeVectorField, *resizeVectorLen, *resizeVectorElemSize)
		if err != nil {
			log.Fatalf("rbdump: %v", err)
		}
		if err := os.WriteFile(*bufPath, out, 0o644); err != nil {
			log.Fatalf("rbdump: writing resized buffer: %v", err)
		}
		fmt.Printf("resized, wrote %d bytes to %s\n", len(out), *bufPath)
		return
	}

	dump(rec, 0)
}

// applyResize performs at most one resize operation against rec's root
// object and returns the buffer to write back. field=value for
// resizeString must name a root String field; resizeVectorField/Len/
// ElemSize resize a root Vector field, filling any new elements with
// zero bytes.
func applyResize(rec *reflectbuf.Record, resizeString, resizeVectorField string, newLen, elemSize int) ([]byte, error) {
	if resizeString != "" {
		name, val, ok := strings.Cut(resizeString, "=")
		if !ok {
			return nil, fmt.Errorf("-resize-string wants field=value, got %q", resizeString)
		}
		return rec.Resize(name, val), nil
	}
	if newLen < 0 {
		return nil, fmt.Errorf("-resize-vector-len is required with -resize-vector-field")
	}
	fill := make([]byte, elemSize)
	return rec.ResizeVector(resizeVectorField, newLen, elemSize, fill), nil
}

// loadSchemaCached loads schemaPath, transparently backed by a compiled
// cache at cachePath: a hit skips YAML/JSON parsing entirely, a miss parses
// normally and writes the cache for next time. cachePath == "" disables
// caching. A corrupt or stale cache is logged and ignored rather than
// treated as fatal — the source schema file is still authoritative.
func loadSchemaCached(schemaPath, cachePath string) (*schema.Schema, error) {
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			if sch, err := decodeSchemaCache(data); err == nil {
				return sch, nil
			} else {
				log.Printf("rbdump: ignoring schema cache %s: %v", cachePath, err)
			}
		}
	}

	sch, err := loadSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		if err := os.WriteFile(cachePath, encodeSchemaCache(sch), 0o644); err != nil {
			log.Printf("rbdump: writing schema cache %s: %v", cachePath, err)
		}
	}
	return sch, nil
}

func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return schema.LoadJSON(data)
	case ".yaml", ".yml":
		return schema.LoadYAML(data)
	default:
		return nil, fmt.Errorf("unrecognized schema extension %q, want .yaml/.yml/.json", filepath.Ext(path))
	}
}

func dump(rec *reflectbuf.Record, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range rec.Object.Fields {
		fmt.Printf("%s%s: %s\n", indent, f.Name, rec.String(f.Name))
	}
}
