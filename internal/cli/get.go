package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	api "github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type GetOptions struct {
	GlobalOptions

	Output string
	out    io.Writer
}

func DefaultGetOptions() *GetOptions {
	return &GetOptions{
		GlobalOptions: DefaultGlobalOptions(),
		out:           os.Stdout,
	}
}

func NewCmdGet() *cobra.Command {
	o := DefaultGetOptions()
	cmd := &cobra.Command{
		Use:   "get (TYPE | TYPE/ID)",
		Short: "Display one or many resources.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *GetOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *GetOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if cmd != nil {
		o.out = cmd.OutOrStdout()
	}
	return nil
}

func (o *GetOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}
	switch {
	case kind == SimulationKind && id != "":
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("invalid simulation id %q: %w", id, err)
		}
	case kind == ProductKind && id != "":
		return fmt.Errorf("products can only be listed")
	}

	return validateOutput(o.Output)
}

func (o *GetOptions) Run(ctx context.Context, args []string) error {
	c := o.Client()

	kind, id, err := parseAndValidateKindId(args[0])
	if err != nil {
		return err
	}

	var response any
	switch {
	case kind == SimulationKind && id != "":
		response, err = c.GetSimulation(ctx, uuid.MustParse(id))
	case kind == SimulationKind:
		response, err = c.ListSimulations(ctx)
	case kind == ProductKind:
		response, err = c.ListProducts(ctx)
	default:
		return fmt.Errorf("unsupported resource kind: %s", kind)
	}
	if err != nil {
		return err
	}

	printed, err := printStructured(o.out, o.Output, response)
	if printed || err != nil {
		return err
	}
	return printTable(o.out, response)
}

func printTable(out io.Writer, response any) error {
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	switch r := response.(type) {
	case *api.Simulation:
		printSimulationsTable(w, *r)
	case api.SimulationList:
		printSimulationsTable(w, r...)
	case *api.ProductFeed:
		printProductsTable(w, r.Products...)
	default:
		return fmt.Errorf("unknown resource type %T", response)
	}
	return w.Flush()
}

func printSimulationsTable(w io.Writer, sims ...api.Simulation) {
	fmt.Fprintln(w, "ID\tCREATED\tSERVICES\tOVERALL %\tMONTHLY COST\tROI MONTHS")
	for _, s := range sims {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%d\n",
			s.Id,
			s.CreatedAt.Format("2006-01-02 15:04"),
			strings.Join(s.Input.Services, ","),
			s.Result.OverallImprovementPct,
			s.Result.EstimatedMonthlyCost,
			s.Result.EstimatedRoiMonths,
		)
	}
}

func printProductsTable(w io.Writer, products ...api.FeedProduct) {
	fmt.Fprintln(w, "ID\tNAME\tPRICE")
	lines := funk.Map(products, func(p api.FeedProduct) string {
		return fmt.Sprintf("%d\t%s\t%.2f", p.Id, p.Name, p.Price)
	}).([]string)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
