package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/go/ast/astutil"
)

const (
	modulePath  = "github.com/nfrund/alphaprime"
	modulesFile = "internal/app/modules.go"
)

var (
	moduleName     string
	moduleNameRule = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
)

var newModuleCmd = &cobra.Command{
	Use:   "new-module",
	Short: "Scaffold a new application module",
	Long: `Creates a module with a definition and a page handler under internal/modules,
then registers it in internal/app/modules.go. Run it from the repository root.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !moduleNameRule.MatchString(moduleName) {
			return fmt.Errorf("module name must be lowercase letters and digits, got %q", moduleName)
		}
		if err := generateModule(".", moduleName); err != nil {
			return fmt.Errorf("generate module: %w", err)
		}
		if err := updateModulesFile(filepath.Join(".", modulesFile), moduleName); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Automatic update of %s failed: %v\n", modulesFile, err)
			printNextSteps(cmd, moduleName)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created module '%s' in internal/modules/%s/ and registered it in %s\n", moduleName, moduleName, modulesFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newModuleCmd)
	newModuleCmd.Flags().StringVarP(&moduleName, "name", "n", "", "The name of the new module (e.g., 'webinars')")
}

type templateData struct {
	Name       string
	PascalName string
	ModulePath string
}

func generateModule(root, name string) error {
	data := templateData{
		Name:       name,
		PascalName: cases.Title(language.English).String(name),
		ModulePath: modulePath,
	}

	moduleDir := filepath.Join(root, "internal", "modules", name)
	if _, err := os.Stat(moduleDir); err == nil {
		return fmt.Errorf("module directory %s already exists", moduleDir)
	}
	if err := os.MkdirAll(moduleDir, 0o755); err != nil {
		return fmt.Errorf("create module directory: %w", err)
	}

	if err := generateFile(filepath.Join(moduleDir, "module.go"), moduleTemplate, data); err != nil {
		return err
	}
	return generateFile(filepath.Join(moduleDir, "handler.go"), handlerTemplate, data)
}

func generateFile(path, tmpl string, data templateData) error {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return os.WriteFile(path, src, 0o644)
}

// updateModulesFile imports the new package and appends name.New(...) to the
// slice NewModules returns.
func updateModulesFile(path, name string) error {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	astutil.AddImport(fset, node, fmt.Sprintf("%s/internal/modules/%s", modulePath, name))

	added := false
	ast.Inspect(node, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "NewModules" {
			return true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok || len(ret.Results) == 0 {
				return true
			}
			list, ok := ret.Results[0].(*ast.CompositeLit)
			if !ok {
				return false
			}
			list.Elts = append(list.Elts, &ast.CallExpr{
				Fun: &ast.SelectorExpr{X: ast.NewIdent(name), Sel: ast.NewIdent("New")},
				Args: []ast.Expr{&ast.CompositeLit{
					Type: &ast.SelectorExpr{X: ast.NewIdent(name), Sel: ast.NewIdent("Dependencies")},
				}},
			})
			added = true
			return false
		})
		return false
	})
	if !added {
		return errors.New("NewModules return statement not found")
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return fmt.Errorf("format AST: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func printNextSteps(cmd *cobra.Command, name string) {
	fmt.Fprintf(cmd.OutOrStdout(), `Created module '%[1]s' in internal/modules/%[1]s/

Register it in %[2]s:

	import "%[3]s/internal/modules/%[1]s"

	%[1]s.New(%[1]s.Dependencies{}),
`, name, modulesFile, modulePath)
}

const moduleTemplate = `package {{.Name}}

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"{{.ModulePath}}/internal/module"
	"{{.ModulePath}}/internal/registry"
)

type Dependencies struct{}

type Module struct {
	module.BaseModule
}

func New(deps Dependencies) *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "{{.Name}}"
}

func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting {{.PascalName}} module")
	g.GET("/{{.Name}}", handlePage)
	return nil
}
`

const handlerTemplate = `package {{.Name}}

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"{{.ModulePath}}/internal/view"
	"{{.ModulePath}}/web/src/templates/layouts"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func handlePage(c echo.Context) error {
	page := Main(Class("container mx-auto px-4 py-16"),
		H1(Class("text-3xl font-bold"), g.Text("{{.PascalName}}")),
	)
	return c.Render(http.StatusOK, "", layouts.Base("{{.PascalName}}", view.GetFlashData(c), page))
}
`
