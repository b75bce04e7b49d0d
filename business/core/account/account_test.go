package account_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaind/chaind/business/core/account"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Generate(t *testing.T) {
	t.Log("Given the need to hand each device exactly one stable address.")
	{
		t.Logf("\tTest 0:\tWhen the same device asks twice.")
		{
			core, err := account.New(filepath.Join(t.TempDir(), "accounts.json"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the core: %v", failed, err)
			}

			first, existing, err := core.Generate("device-1")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate an address: %v", failed, err)
			}
			if existing {
				t.Fatalf("\t%s\tTest 0:\tShould report a first time device as new.", failed)
			}
			if !strings.HasPrefix(first, "addr_") {
				t.Fatalf("\t%s\tTest 0:\tShould produce an addr_ prefixed address, got %s.", failed, first)
			}
			t.Logf("\t%s\tTest 0:\tShould produce a new addr_ prefixed address.", success)

			second, existing, err := core.Generate("device-1")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate an address: %v", failed, err)
			}
			if !existing || second != first {
				t.Fatalf("\t%s\tTest 0:\tShould return the same address for a known device.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould return the same address for a known device.", success)

			if core.Count() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould hold a single registered address.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould hold a single registered address.", success)
		}

		t.Logf("\tTest 1:\tWhen different devices ask.")
		{
			core, err := account.New(filepath.Join(t.TempDir(), "accounts.json"))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the core: %v", failed, err)
			}

			first, _, err := core.Generate("device-1")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to generate an address: %v", failed, err)
			}
			second, _, err := core.Generate("device-2")
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to generate an address: %v", failed, err)
			}

			if first == second {
				t.Fatalf("\t%s\tTest 1:\tShould hand different devices different addresses.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould hand different devices different addresses.", success)
		}
	}
}

func Test_Reload(t *testing.T) {
	t.Log("Given the need to restore the registry after a restart.")
	{
		t.Logf("\tTest 0:\tWhen reopening the core over the same file.")
		{
			path := filepath.Join(t.TempDir(), "accounts.json")

			core, err := account.New(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the core: %v", failed, err)
			}
			first, _, err := core.Generate("device-1")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate an address: %v", failed, err)
			}

			reopened, err := account.New(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to reopen the core: %v", failed, err)
			}

			restored, existing, err := reopened.Generate("device-1")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate an address: %v", failed, err)
			}
			if !existing || restored != first {
				t.Fatalf("\t%s\tTest 0:\tShould recognize the device after a restart.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould recognize the device after a restart.", success)
		}
	}
}
