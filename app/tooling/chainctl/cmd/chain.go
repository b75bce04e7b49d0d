package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the node's chain.",
	Run:   chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/chain/list", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		Length int              `json:"length"`
		Chain  []database.Block `json:"chain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Blocks:", result.Length)
	for _, block := range result.Chain {
		fmt.Printf("  %4d  proof %-10d  txs %-3d  prev %s\n", block.Index, block.Proof, len(block.Transactions), block.PrevHash)
	}
}
