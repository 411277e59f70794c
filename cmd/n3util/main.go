// n3util is a small command line companion to the SDK: it disassembles
// scripts, converts addresses and dumps serialized transactions.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/R3E-Network/neo3-sdk/pkg/core/transaction"
	"github.com/R3E-Network/neo3-sdk/pkg/encoding/address"
	"github.com/R3E-Network/neo3-sdk/pkg/encoding/fixedn"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/disasm"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "n3util"
	app.Usage = "Neo N3 transaction and script utilities"
	app.Commands = []cli.Command{
		{
			Name:      "disasm",
			Usage:     "disassemble a script given in hex or base64",
			ArgsUsage: "<script>",
			Action:    disasmScript,
		},
		{
			Name:      "address",
			Usage:     "convert between an address and a script hash",
			ArgsUsage: "<address-or-hash>",
			Action:    convertAddress,
		},
		{
			Name:      "txdump",
			Usage:     "decode a serialized transaction and print it as JSON",
			ArgsUsage: "<tx>",
			Action:    dumpTransaction,
		},
	}
	return app
}

// decodeBytes accepts both hex and standard base64 input, hex first since
// it is unambiguous.
func decodeBytes(s string) ([]byte, error) {
	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("input is neither hex nor base64: %w", err)
	}
	return b, nil
}

func requireArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", errors.New("exactly one argument expected")
	}
	return ctx.Args().Get(0), nil
}

func disasmScript(ctx *cli.Context) error {
	arg, err := requireArg(ctx)
	if err != nil {
		return err
	}
	script, err := decodeBytes(arg)
	if err != nil {
		return err
	}
	listing, err := disasm.Disasm(script)
	if err != nil {
		return fmt.Errorf("failed to disassemble: %w", err)
	}
	fmt.Fprint(ctx.App.Writer, listing)
	return nil
}

func convertAddress(ctx *cli.Context) error {
	arg, err := requireArg(ctx)
	if err != nil {
		return err
	}
	if u, err := address.StringToUint160(arg); err == nil {
		fmt.Fprintf(ctx.App.Writer, "BE: %s\nLE: %s\n", u.StringBE(), u.StringLE())
		return nil
	}
	u, err := util.Uint160DecodeStringLE(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return fmt.Errorf("neither an address nor a script hash: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, address.Uint160ToString(u))
	return nil
}

func dumpTransaction(ctx *cli.Context) error {
	arg, err := requireArg(ctx)
	if err != nil {
		return err
	}
	data, err := decodeBytes(arg)
	if err != nil {
		return err
	}
	tx, err := transaction.NewTransactionFromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to decode transaction: %w", err)
	}
	out, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(out))
	fmt.Fprintf(ctx.App.Writer, "system fee: %s GAS, network fee: %s GAS\n",
		fixedn.Fixed8(tx.SystemFee), fixedn.Fixed8(tx.NetworkFee))
	return nil
}
