package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/swapsies/swapsies/app"
)

func cashCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Inspect and approve fungible tokens",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "balance <token> <holder>",
			Short: "Print the balance of a holder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := parseAddress("token", args[0])
				if err != nil {
					return err
				}
				holder, err := parseAddress("holder", args[1])
				if err != nil {
					return err
				}
				return e.withApp(func(a *app.App) error {
					n, err := a.Balance(token, holder)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), n.Dec())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "allowance <token> <owner> <spender>",
			Short: "Print how much spender may move on behalf of owner",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := parseAddress("token", args[0])
				if err != nil {
					return err
				}
				owner, err := parseAddress("owner", args[1])
				if err != nil {
					return err
				}
				spender, err := parseAddress("spender", args[2])
				if err != nil {
					return err
				}
				return e.withApp(func(a *app.App) error {
					n, err := a.Allowance(token, owner, spender)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), n.Dec())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "approve <token> <spender> <amount>",
			Short: "Allow spender to move tokens of the caller",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := parseAddress("token", args[0])
				if err != nil {
					return err
				}
				spender, err := parseAddress("spender", args[1])
				if err != nil {
					return err
				}
				amount, err := parseUint("amount", args[2])
				if err != nil {
					return err
				}
				return e.withApp(func(a *app.App) error {
					ctx, err := e.caller(cmd.Context(), a)
					if err != nil {
						return err
					}
					return a.Approve(ctx, token, spender, amount)
				})
			},
		},
	)
	return cmd
}

func nftCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "Inspect and approve non-fungible tokens",
	}

	var revoke bool
	approveAll := &cobra.Command{
		Use:   "approve-all <collection> <operator>",
		Short: "Allow operator to move every item of the caller in a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := parseAddress("collection", args[0])
			if err != nil {
				return err
			}
			operator, err := parseAddress("operator", args[1])
			if err != nil {
				return err
			}
			return e.withApp(func(a *app.App) error {
				ctx, err := e.caller(cmd.Context(), a)
				if err != nil {
					return err
				}
				return a.SetOperator(ctx, collection, operator, !revoke)
			})
		},
	}
	approveAll.Flags().BoolVar(&revoke, "revoke", false, "revoke the operator instead")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "owner <collection> <id>",
			Short: "Print the owner and the approved address of an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				collection, err := parseAddress("collection", args[0])
				if err != nil {
					return err
				}
				id, err := parseUint("id", args[1])
				if err != nil {
					return err
				}
				return e.withApp(func(a *app.App) error {
					it, err := a.Item(collection, id)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), it)
				})
			},
		},
		&cobra.Command{
			Use:   "approve <collection> <id> <approved>",
			Short: "Allow an address to move a single item",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				collection, err := parseAddress("collection", args[0])
				if err != nil {
					return err
				}
				id, err := parseUint("id", args[1])
				if err != nil {
					return err
				}
				approved, err := parseAddress("approved", args[2])
				if err != nil {
					return err
				}
				return e.withApp(func(a *app.App) error {
					ctx, err := e.caller(cmd.Context(), a)
					if err != nil {
						return err
					}
					return a.ApproveItem(ctx, collection, id, approved)
				})
			},
		},
		approveAll,
	)
	return cmd
}
