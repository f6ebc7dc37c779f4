package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	api "github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/estimation/calculators"
	apimappers "github.com/peeringlatam/network-planner/internal/handlers/v1alpha1/mappers"
	"github.com/peeringlatam/network-planner/internal/narrative"
	"github.com/peeringlatam/network-planner/internal/service/mappers"
	"github.com/peeringlatam/network-planner/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type SimulateOptions struct {
	LatencyMs       float64
	PacketLossPct   float64
	BandwidthMbps   float64
	PeakTrafficGbps float64
	ConcurrentUsers int
	Services        []string
	Locale          string
	Output          string

	out io.Writer
}

// SimulationOutput is what simulate prints: the normalized input, the metrics and the texts.
type SimulationOutput struct {
	Input     api.SimulationCreate `json:"input"`
	Result    api.SimulationResult `json:"result"`
	Narrative api.Narrative        `json:"narrative"`
}

func DefaultSimulateOptions() *SimulateOptions {
	return &SimulateOptions{
		ConcurrentUsers: 1,
		Locale:          string(estimation.DefaultLocale),
		out:             os.Stdout,
	}
}

func NewCmdSimulate() *cobra.Command {
	o := DefaultSimulateOptions()
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate the improvement of a network locally, without the server.",
		Example: "  planner simulate --latency 45 --packet-loss 2.5 --bandwidth 100 --services pmaas,cdn\n" +
			"  planner simulate --latency 80 --packet-loss 1 --bandwidth 50 --services ddos --locale en -o yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
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

func (o *SimulateOptions) Bind(fs *pflag.FlagSet) {
	fs.Float64Var(&o.LatencyMs, "latency", o.LatencyMs, "Current latency in milliseconds")
	fs.Float64Var(&o.PacketLossPct, "packet-loss", o.PacketLossPct, "Current packet loss in percent")
	fs.Float64Var(&o.BandwidthMbps, "bandwidth", o.BandwidthMbps, "Current bandwidth in Mbps")
	fs.Float64Var(&o.PeakTrafficGbps, "peak-traffic", o.PeakTrafficGbps, "Peak traffic in Gbps")
	fs.IntVar(&o.ConcurrentUsers, "users", o.ConcurrentUsers, "Concurrent users")
	fs.StringSliceVar(&o.Services, "services", o.Services, "Services to include: pmaas, cdn, ddos, analytics")
	fs.StringVar(&o.Locale, "locale", o.Locale, "Language of the texts: es, en or pt")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *SimulateOptions) Validate(args []string) error {
	return validateOutput(o.Output)
}

func (o *SimulateOptions) input() estimation.Input {
	return apimappers.SimulationFormToInput(api.SimulationCreate{
		LatencyMs:       o.LatencyMs,
		PacketLossPct:   o.PacketLossPct,
		BandwidthMbps:   o.BandwidthMbps,
		PeakTrafficGbps: o.PeakTrafficGbps,
		ConcurrentUsers: o.ConcurrentUsers,
		Services:        o.Services,
		Locale:          util.ToPtr(o.Locale),
	})
}

// Simulate runs the calculator with the template narrative only.
func (o *SimulateOptions) Simulate(ctx context.Context) (*SimulationOutput, error) {
	res, err := calculators.NewDefaultEngine().Run(o.input())
	if err != nil {
		var invalid *estimation.ErrInvalidInput
		if errors.As(err, &invalid) {
			return nil, fmt.Errorf("invalid simulation:\n  %s", strings.Join(invalid.Violations, "\n  "))
		}
		return nil, err
	}

	n := narrative.NewGenerator().Generate(ctx, narrative.NewSummary(res))
	sim := apimappers.SimulationToApi(mappers.ResultToSimulation(res, n, ""))

	return &SimulationOutput{
		Input:     sim.Input,
		Result:    sim.Result,
		Narrative: sim.Narrative,
	}, nil
}

func (o *SimulateOptions) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	output, err := o.Simulate(ctx)
	if err != nil {
		return err
	}

	printed, err := printStructured(o.out, o.Output, output)
	if printed || err != nil {
		return err
	}

	w := tabwriter.NewWriter(o.out, 0, 8, 1, '\t', 0)
	r := output.Result
	fmt.Fprintf(w, "SERVICES\t%s\n", strings.Join(output.Input.Services, ","))
	fmt.Fprintf(w, "LATENCY (ms)\t%.2f -> %.2f\t(-%.1f%%)\n", output.Input.LatencyMs, r.ImprovedLatencyMs, r.LatencyImprovementPct)
	fmt.Fprintf(w, "PACKET LOSS (%%)\t%.3f -> %.3f\t(-%.1f%%)\n", output.Input.PacketLossPct, r.ImprovedPacketLossPct, r.PacketLossImprovementPct)
	fmt.Fprintf(w, "BANDWIDTH (Mbps)\t%.2f -> %.2f\t(+%.1f%%)\n", output.Input.BandwidthMbps, r.ImprovedBandwidthMbps, r.BandwidthImprovementPct)
	fmt.Fprintf(w, "OVERALL\t%.2f%%\n", r.OverallImprovementPct)
	fmt.Fprintf(w, "MONTHLY COST (USD)\t%s\n", r.EstimatedMonthlyCost)
	fmt.Fprintf(w, "ROI (months)\t%d\n", r.EstimatedRoiMonths)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "\n%s\n\n%s\n", output.Narrative.AnalysisText, output.Narrative.RecommendationsText)
	return nil
}
