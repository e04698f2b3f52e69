package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/cha-engine/cha"
	"github.com/cwbudde/cha-engine/internal/scenario"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <scenario.yaml> <verb> [args...]",
	Short: "Answer a single structural query against a closed world",
	Long: `Loads the scenario file, closes the world, and answers one query.

Verbs:
  is-subclass <x> <y>        IsSubclassOf(x, y)
  is-subtype <x> <y>         IsSubtypeOf(x, y)
  subclasses <x>             SubclassesOf(x)
  subtypes <x>                SubtypesOf(x)
  lub-subclasses <x>          GetLubOfInstantiatedSubclasses(x)
  lub-subtypes <x>            GetLubOfInstantiatedSubtypes(x)
  common-supertypes <x> <y...> CommonSupertypesOf([x, y, ...])
  mixin-uses <m>               MixinUsesOf(m)
  stats                        Stats()`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(_ *cobra.Command, args []string) error {
	f, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	w, err := f.Build()
	if err != nil {
		return err
	}

	verb := args[1]
	rest := args[2:]

	classArg := func(i int) (cha.Class, error) {
		if i >= len(rest) {
			return nil, fmt.Errorf("verb %q requires a class name at position %d", verb, i+1)
		}
		return f.ClassByName(w, rest[i])
	}

	switch verb {
	case "is-subclass":
		x, err := classArg(0)
		if err != nil {
			return err
		}
		y, err := classArg(1)
		if err != nil {
			return err
		}
		fmt.Println(w.IsSubclassOf(x, y))

	case "is-subtype":
		x, err := classArg(0)
		if err != nil {
			return err
		}
		y, err := classArg(1)
		if err != nil {
			return err
		}
		fmt.Println(w.IsSubtypeOf(x, y))

	case "subclasses":
		x, err := classArg(0)
		if err != nil {
			return err
		}
		fmt.Println(joinClassNames(w.SubclassesOf(x)))

	case "subtypes":
		x, err := classArg(0)
		if err != nil {
			return err
		}
		fmt.Println(joinClassNames(w.SubtypesOf(x)))

	case "lub-subclasses":
		x, err := classArg(0)
		if err != nil {
			return err
		}
		fmt.Println(classNameOrNone(w.GetLubOfInstantiatedSubclasses(x)))

	case "lub-subtypes":
		x, err := classArg(0)
		if err != nil {
			return err
		}
		fmt.Println(classNameOrNone(w.GetLubOfInstantiatedSubtypes(x)))

	case "common-supertypes":
		if len(rest) < 2 {
			return fmt.Errorf("common-supertypes requires at least two class names")
		}
		classes := make([]cha.Class, len(rest))
		for i := range rest {
			c, err := classArg(i)
			if err != nil {
				return err
			}
			classes[i] = c
		}
		fmt.Println(joinClassNames(w.CommonSupertypesOf(classes)))

	case "mixin-uses":
		m, err := classArg(0)
		if err != nil {
			return err
		}
		fmt.Println(joinClassNames(w.MixinUsesOf(m)))

	case "stats":
		s := w.Stats()
		fmt.Printf("registeredClasses=%d directlyInstantiated=%d liveMixinUses=%d\n",
			s.RegisteredClasses, s.DirectlyInstantiated, s.LiveMixinUses)

	default:
		return fmt.Errorf("unknown verb %q", verb)
	}
	return nil
}

func joinClassNames(classes []cha.Class) string {
	if len(classes) == 0 {
		return "(none)"
	}
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

func classNameOrNone(c cha.Class) string {
	if c == nil {
		return "(none)"
	}
	return c.Name()
}
