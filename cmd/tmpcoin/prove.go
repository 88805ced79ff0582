package tmpcoin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/manifest-network/tmpcoin/internal/ledger"
)

var proveCmd = &cobra.Command{
	Use:   "prove <last-proof>",
	Short: "Find the smallest proof that follows last-proof",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lastProof, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.WithMessage(err, "error parsing last proof")
		}

		difficulty, err := cmd.Flags().GetInt("difficulty")
		if err != nil {
			return err
		}
		if err := ledger.ValidateDifficulty(difficulty); err != nil {
			return err
		}

		prover := ledger.NewProver(difficulty)
		start := time.Now()
		proof, err := prover.Go(cmd.Context(), lastProof).Wait()
		if err != nil {
			return fmt.Errorf("proof search failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "proof=%d digest=%s attempts=%d elapsed=%s\n",
			proof, prover.Digest(lastProof, proof), proof+1, time.Since(start).Round(time.Microsecond))
		return nil
	},
}

func init() {
	proveCmd.Flags().Int("difficulty", ledger.DefaultDifficulty, "Trailing zero hex digits a proof hash must carry")
}
