package database

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"strings"
)

//go:embed sql
var sqlFS embed.FS

// Statement names.
const (
	StmtInsertTrade   = "insert_trade"
	StmtListExchanges = "list_exchanges"
	StmtAddExchange   = "add_exchange"
)

// Script is one named SQL source.
type Script struct {
	Name string
	SQL  string
}

// Catalog is the ordered set of schema and query scripts for Bootstrap.
type Catalog struct {
	Schema  []Script
	Queries []Script
}

var (
	schemaNames = []string{"trades", "exchanges"}
	queryNames  = []string{StmtInsertTrade, StmtListExchanges, StmtAddExchange}
)

// DefaultCatalog loads the gateway's embedded scripts.
func DefaultCatalog() (Catalog, error) {
	schema, err := LoadScripts(sqlFS, "sql/schema", KindSchema, schemaNames)
	if err != nil {
		return Catalog{}, err
	}
	queries, err := LoadScripts(sqlFS, "sql/query", KindQuery, queryNames)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{Schema: schema, Queries: queries}, nil
}

// LoadScripts reads <dir>/<name>.sql for each name, in order. A missing or
// empty script is a *BootstrapError.
func LoadScripts(fsys fs.FS, dir string, kind ScriptKind, names []string) ([]Script, error) {
	scripts := make([]Script, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name+".sql"))
		if err != nil {
			return nil, &BootstrapError{Kind: kind, Script: name, Err: err}
		}
		sql := strings.TrimSpace(string(data))
		if sql == "" {
			return nil, &BootstrapError{Kind: kind, Script: name, Err: errors.New("script is empty")}
		}
		scripts = append(scripts, Script{Name: name, SQL: sql})
	}
	return scripts, nil
}

