package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/swapsies/swapsies/app"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/x/swap"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <ask.json>",
		Short: "Print the fingerprint of an ask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ask, err := readAsk(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			fp, err := swap.FingerprintOf(ask)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fp)
			return nil
		},
	}
}

func askCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Create, cancel, fill and inspect asks",
	}
	cmd.AddCommand(
		askCreateCmd(e),
		askCancelCmd(e),
		askFillCmd(e),
		askCheckCmd(e),
		askShowCmd(e),
		askActiveCmd(e),
		askListCmd(e),
	)
	return cmd
}

// askAction builds a command running fn as the --as caller against an ask
// read from the file given as the only argument.
func askAction(e *env, use, short string, fn func(ctx context.Context, cmd *cobra.Command, a *app.App, ask *swap.Ask) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <ask.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ask, err := readAsk(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return e.withApp(func(a *app.App) error {
				ctx, err := e.caller(cmd.Context(), a)
				if err != nil {
					return err
				}
				return fn(ctx, cmd, a, ask)
			})
		},
	}
}

func askCreateCmd(e *env) *cobra.Command {
	return askAction(e, "create", "Register an ask signed by its asker",
		func(ctx context.Context, cmd *cobra.Command, a *app.App, ask *swap.Ask) error {
			fp, err := a.Engine.CreateAsk(ctx, ask)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fp)
			return nil
		})
}

func askFillCmd(e *env) *cobra.Command {
	return askAction(e, "fill", "Fill an active ask as its designated filler",
		func(ctx context.Context, cmd *cobra.Command, a *app.App, ask *swap.Ask) error {
			if err := a.Engine.FillAsk(ctx, ask); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "filled")
			return nil
		})
}

func askCheckCmd(e *env) *cobra.Command {
	return askAction(e, "check", "Report whether filling an ask would succeed",
		func(ctx context.Context, cmd *cobra.Command, a *app.App, ask *swap.Ask) error {
			if err := a.Engine.CheckFill(ctx, ask); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		})
}

func askCancelCmd(e *env) *cobra.Command {
	var byFingerprint string
	cmd := &cobra.Command{
		Use:   "cancel [ask.json]",
		Short: "Cancel an active ask as its asker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ask *swap.Ask
				fp  swap.Fingerprint
				err error
			)
			switch {
			case byFingerprint != "" && len(args) == 0:
				if fp, err = swap.ParseFingerprint(byFingerprint); err != nil {
					return err
				}
			case byFingerprint == "" && len(args) == 1:
				if ask, err = readAsk(args[0], cmd.InOrStdin()); err != nil {
					return err
				}
			default:
				return errors.Wrap(errors.ErrInput, "provide either an ask file or --fingerprint")
			}

			return e.withApp(func(a *app.App) error {
				ctx, err := e.caller(cmd.Context(), a)
				if err != nil {
					return err
				}
				if ask != nil {
					err = a.Engine.CancelAsk(ctx, ask)
				} else {
					err = a.Engine.CancelAskByFingerprint(ctx, fp)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&byFingerprint, "fingerprint", "", "fingerprint of the ask to cancel")
	return cmd
}

func askShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <fingerprint>",
		Short: "Print an active ask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := swap.ParseFingerprint(args[0])
			if err != nil {
				return err
			}
			return e.withApp(func(a *app.App) error {
				ask, err := a.Engine.Ask(fp)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ask)
			})
		},
	}
}

func askActiveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "active <fingerprint>",
		Short: "Print whether an ask is active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := swap.ParseFingerprint(args[0])
			if err != nil {
				return err
			}
			return e.withApp(func(a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.Engine.IsActive(fp))
				return nil
			})
		},
	}
}

func askListCmd(e *env) *cobra.Command {
	var asker, filler string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fingerprints of active asks of a party",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				party swap.Party
				raw   string
			)
			switch {
			case asker != "" && filler == "":
				party, raw = swap.Asker, asker
			case filler != "" && asker == "":
				party, raw = swap.Filler, filler
			default:
				return errors.Wrap(errors.ErrInput, "provide exactly one of --asker or --filler")
			}
			addr, err := parseAddress(string(party), raw)
			if err != nil {
				return err
			}
			return e.withApp(func(a *app.App) error {
				fps, err := a.Engine.ActiveAsks(party, addr)
				if err != nil {
					return err
				}
				if fps == nil {
					fps = []swap.Fingerprint{}
				}
				return printJSON(cmd.OutOrStdout(), fps)
			})
		},
	}
	cmd.Flags().StringVar(&asker, "asker", "", "list asks created by this address")
	cmd.Flags().StringVar(&filler, "filler", "", "list asks designated to this filler")
	return cmd
}
