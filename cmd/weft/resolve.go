package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weft/internal/metadata"
	"weft/internal/modfile"
	"weft/internal/resolve"
)

var (
	resolveRefs    []string
	resolveProject string
)

func init() {
	resolveCmd.Flags().StringArrayVar(&resolveRefs, "ref", nil, "referenced source module (repeatable)")
	resolveCmd.Flags().StringVar(&resolveProject, "project", "", "weft.toml manifest naming the target and its refs")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [module.weft] <Type::member[(Param, Param)]>",
	Short: "Run a member query against a module and print the built reference",
	Long: `Resolve looks a member up the way a transformation would: the query is
matched against the owning type's member list, reduced to exactly one
candidate, imported into the module's scope and printed. Zero matches or
more than one match fail with the resolver's error.

With --project the target module and its referenced modules come from the
manifest and only the query is positional.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, query, err := resolveContext(args)
		if err != nil {
			return err
		}

		ownerName, name, params, err := parseMemberQuery(query)
		if err != nil {
			return err
		}
		owner, err := findOwnerRef(ctx, ownerName)
		if err != nil {
			return err
		}

		builder, err := runQuery(ctx, owner, name, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), builder.Build().FullName())
		return nil
	},
}

// resolveContext builds the import context from either a manifest or the
// positional module path plus --ref flags, and returns the query argument.
func resolveContext(args []string) (*resolve.Context, string, error) {
	if resolveProject != "" {
		if len(args) != 1 {
			return nil, "", fmt.Errorf("--project already names the target module; expected only a query")
		}
		s, err := loadSession(resolveProject)
		if err != nil {
			return nil, "", err
		}
		return resolve.NewContext(s.dest, s.sources...), args[0], nil
	}
	if len(args) != 2 {
		return nil, "", fmt.Errorf("expected a module path and a query, or --project and a query")
	}
	dest, err := modfile.Load(args[0])
	if err != nil {
		return nil, "", err
	}
	sources := make([]*metadata.Module, 0, len(resolveRefs))
	for _, path := range resolveRefs {
		src, err := modfile.Load(path)
		if err != nil {
			return nil, "", err
		}
		sources = append(sources, src)
	}
	return resolve.NewContext(dest, sources...), args[1], nil
}

// parseMemberQuery splits `Type::member` with an optional `(A, B)` list of
// full type names.
func parseMemberQuery(s string) (owner, name string, params []resolve.TypeDesc, err error) {
	ownerName, rest, ok := strings.Cut(s, "::")
	if !ok {
		return "", "", nil, fmt.Errorf("query %q: expected Type::member", s)
	}
	name = rest
	if open := strings.IndexByte(rest, '('); open >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return "", "", nil, fmt.Errorf("query %q: unterminated parameter list", s)
		}
		name = rest[:open]
		list := strings.TrimSpace(rest[open+1 : len(rest)-1])
		params = []resolve.TypeDesc{}
		if list != "" {
			for _, part := range strings.Split(list, ",") {
				params = append(params, resolve.NamedType(strings.TrimSpace(part)))
			}
		}
	}
	if name == "" {
		return "", "", nil, fmt.Errorf("query %q: empty member name", s)
	}
	return ownerName, name, params, nil
}

func findOwnerRef(ctx *resolve.Context, fullName string) (*metadata.TypeRef, error) {
	namespace, name := "", fullName
	if dot := strings.LastIndexByte(fullName, '.'); dot >= 0 {
		namespace, name = fullName[:dot], fullName[dot+1:]
	}
	ref := metadata.NamedRef(namespace, name, "")
	if _, err := ctx.ResolveRequiredType(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func runQuery(ctx *resolve.Context, owner *metadata.TypeRef, name string, params []resolve.TypeDesc) (*resolve.Builder, error) {
	switch name {
	case metadata.CtorName:
		return ctx.Constructor(owner, params)
	case metadata.TypeInitName:
		return ctx.TypeInitializer(owner)
	}
	if params == nil {
		return ctx.Method(owner, name)
	}
	return ctx.MethodWithSignature(owner, name, 0, nil, params)
}
