package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"weft/internal/metadata"
	"weft/internal/modfile"
)

var (
	inspectBodies    bool
	inspectLocations bool
	inspectProject   string
)

// inspectOptions control how much of a module the renderer prints.
type inspectOptions struct {
	bodies    bool
	locations bool
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectBodies, "bodies", false, "print method instruction streams")
	inspectCmd.Flags().BoolVar(&inspectLocations, "locations", false, "print debug-location tables (implies --bodies)")
	inspectCmd.Flags().StringVar(&inspectProject, "project", "", "weft.toml manifest naming the module to inspect")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [module.weft]",
	Short: "List a module's types, members and instruction streams",
	Long: `Inspect prints a module's type definitions and members. With --project the
module is taken from the manifest's target, and the manifest's debug switch
decides whether location tables are shown at all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := inspectOptions{bodies: inspectBodies, locations: inspectLocations}
		var mod *metadata.Module
		switch {
		case inspectProject != "":
			if len(args) != 0 {
				return fmt.Errorf("--project already names the module to inspect")
			}
			s, err := loadSession(inspectProject)
			if err != nil {
				return err
			}
			mod = s.dest
			// A session with debug locations switched off never shows
			// them, mirroring what its remapper would emit.
			opts.locations = opts.locations && s.manifest.DebugLocations
		case len(args) == 1:
			var err error
			mod, err = modfile.Load(args[0])
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("expected a module path or --project")
		}
		renderModule(cmd.OutOrStdout(), mod, opts)
		return nil
	},
}

var (
	typeNameColor   = color.New(color.FgCyan, color.Bold)
	memberKindColor = color.New(color.FgYellow)
)

func renderModule(out io.Writer, mod *metadata.Module, opts inspectOptions) {
	fmt.Fprintf(out, "module %s (scope %s)\n", mod.Name, mod.Scope)
	for _, def := range mod.TypeDefs {
		name := def.FullName()
		if len(def.GenericParams) > 0 {
			name += "<" + strings.Join(def.GenericParams, ", ") + ">"
		}
		fmt.Fprintf(out, "\n%s\n", typeNameColor.Sprint(name))
		for _, f := range def.Fields {
			fmt.Fprintf(out, "  %s %s %s%s\n", memberKindColor.Sprint("field"), f.Type.FullName(), f.Name, flagSuffix(f.Flags))
		}
		for _, m := range def.Methods {
			renderMethod(out, m, opts)
		}
		for _, p := range def.Properties {
			fmt.Fprintf(out, "  %s %s %s\n", memberKindColor.Sprint("property"), p.Type.FullName(), p.Name)
		}
		for _, e := range def.Events {
			fmt.Fprintf(out, "  %s %s %s\n", memberKindColor.Sprint("event"), e.Type.FullName(), e.Name)
		}
	}
}

func renderMethod(out io.Writer, m *metadata.MethodDef, opts inspectOptions) {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.Type.FullName())
	}
	sig := m.Name
	if len(m.GenericParams) > 0 {
		sig += "<" + strings.Join(m.GenericParams, ", ") + ">"
	}
	sig += "(" + strings.Join(params, ", ") + ")"
	if m.Return != nil {
		sig += ": " + m.Return.FullName()
	}
	fmt.Fprintf(out, "  %s %s%s\n", memberKindColor.Sprint("method"), sig, flagSuffix(m.Flags))
	if m.Body == nil || !(opts.bodies || opts.locations) {
		return
	}
	for _, in := range m.Body.Instructions {
		fmt.Fprintf(out, "    %s\n", in)
	}
	if opts.locations {
		for _, loc := range m.Body.DebugLocations {
			fmt.Fprintf(out, "    .loc %s\n", loc)
		}
	}
}

func flagSuffix(f metadata.MemberFlags) string {
	labels := f.Strings()
	if len(labels) == 0 {
		return ""
	}
	return " [" + strings.Join(labels, ", ") + "]"
}
