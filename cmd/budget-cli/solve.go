package main

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/internal/solver"
	"github.com/vfg2006/media-planner-api/internal/usecases/planning"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	flagTotal         float64
	flagAds           []float64
	flagAgencyFee     float64
	flagThirdPartyFee float64
	flagFixedCost     float64
	flagTrace         bool
	flagJSON          bool
	flagMaxIterations int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Calcula o orçamento máximo do anúncio alvo",
	Example: "  budget-cli solve --total 10000 --ad 1000 --ad 2000 --ad 1500 " +
		"--agency-fee 0.1 --third-party-fee 0.05 --fixed-cost 500",
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().Float64Var(&flagTotal, "total", 0, "Orçamento total da campanha")
	solveCmd.Flags().Float64SliceVar(&flagAds, "ad", nil, "Orçamento de um anúncio já definido (repetível)")
	solveCmd.Flags().Float64Var(&flagAgencyFee, "agency-fee", 0, "Taxa da agência, fracionária (0.1 = 10%)")
	solveCmd.Flags().Float64Var(&flagThirdPartyFee, "third-party-fee", 0, "Taxa de ferramentas de terceiros, fracionária")
	solveCmd.Flags().Float64Var(&flagFixedCost, "fixed-cost", 0, "Custo fixo de horas da agência")
	solveCmd.Flags().BoolVar(&flagTrace, "trace", false, "Loga cada iteração da busca (use com --verbose)")
	solveCmd.Flags().BoolVar(&flagJSON, "json", false, "Imprime a resposta no mesmo formato da API")
	solveCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", solver.DefaultMaxIterations, "Limite de iterações da busca")
	_ = solveCmd.MarkFlagRequired("total")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Solver: config.Solver{
			MaxIterations:   flagMaxIterations,
			Tolerance:       solver.DefaultTolerance,
			InitialStep:     solver.DefaultInitialStep,
			TraceIterations: flagTrace,
		},
	}

	planner := planning.NewService(cfg, nil, nil)
	resp, err := planner.CalculateMaxBudget(context.Background(), &domain.CalculateBudgetRequest{
		TotalBudgetZ:            flagTotal,
		AdBudgets:               flagAds,
		AgencyFeePercentage:     flagAgencyFee,
		ThirdPartyFeePercentage: flagThirdPartyFee,
		FixedAgencyHoursCost:    flagFixedCost,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	renderResponse(cmd.OutOrStdout(), resp)
	return nil
}

func renderResponse(w io.Writer, resp *domain.CalculateBudgetResponse) {
	b := resp.Breakdown

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Orçamento máximo do anúncio alvo  %12.2f\n", resp.MaxBudgetForTargetAd)
	fmt.Fprintf(w, "  Orçamento total calculado         %12.2f\n", resp.TotalBudget)
	fmt.Fprintf(w, "  Saldo restante                    %12.2f\n", resp.RemainingBudget)
	fmt.Fprintf(w, "  Iterações                         %12d\n", resp.Iterations)
	if resp.Clamped {
		fmt.Fprintln(w, "  Os anúncios definidos já excedem o orçamento total")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-30s %12.2f\n", "Anúncios definidos", b.CommittedAdSpend)
	fmt.Fprintf(w, "  %-30s %12.2f\n", "Anúncio alvo", b.TargetAdSpend)
	fmt.Fprintf(w, "  %-30s %12.2f\n", "Taxa da agência", b.AgencyFee)
	fmt.Fprintf(w, "  %-30s %12.2f\n", "Taxa de terceiros", b.ThirdPartyFee)
	fmt.Fprintf(w, "  %-30s %12.2f\n", "Horas fixas da agência", b.FixedAgencyHoursCost)
	fmt.Fprintf(w, "  %-30s %12.2f\n", "TOTAL", b.TotalBudget)
}
