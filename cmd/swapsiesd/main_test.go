package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swapsies/swapsies"
	"github.com/swapsies/swapsies/errors"
	"github.com/swapsies/swapsies/swapsiestest/assert"
)

const (
	alice  = "0x1111111111111111111111111111111111111111"
	bob    = "0x2222222222222222222222222222222222222222"
	engine = "0x9999999999999999999999999999999999999999"
	tokenX = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tokenY = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	punks  = "0xcccccccccccccccccccccccccccccccccccccccc"
)

const genesisJSON = `{
	"chain_id": "cli-chain",
	"app_state": {
		"conf": {"swap": {"engine": "` + engine + `", "max_bundle_entries": 4}},
		"cash": {
			"balances": [
				{"token": "` + tokenX + `", "holder": "` + alice + `", "amount": "100"},
				{"token": "` + tokenY + `", "holder": "` + bob + `", "amount": "100"}
			]
		},
		"nft": {"items": [{"collection": "` + punks + `", "id": "7", "owner": "` + alice + `"}]}
	}
}`

const askJSON = `{
	"asker": "` + alice + `",
	"filler": "` + bob + `",
	"asker_fungible": {"tokens": ["` + tokenX + `"], "amounts": ["25"]},
	"asker_non_fungible": {"tokens": ["` + punks + `"], "token_ids": ["7"]},
	"filler_fungible": {"tokens": ["` + tokenY + `"], "amounts": ["50"]},
	"filler_non_fungible": {"tokens": [], "token_ids": []}
}`

// cli runs commands against a database in a temporary home directory.
type cli struct {
	t    *testing.T
	home string
	dir  string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	c := &cli{t: t, home: filepath.Join(dir, "home"), dir: dir}
	require.NoError(t, os.WriteFile(c.path("genesis.json"), []byte(genesisJSON), 0o600))
	require.NoError(t, os.WriteFile(c.path("ask.json"), []byte(askJSON), 0o600))
	return c
}

func (c *cli) path(name string) string {
	return filepath.Join(c.dir, name)
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--home", c.home, "--log-level", "none"}, args...))
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "swapsiesd %s", strings.Join(args, " "))
	return out
}

func TestSwapThroughCommands(t *testing.T) {
	c := newCLI(t)
	assert.Equal(t, "initialized cli-chain", c.mustRun("init", c.path("genesis.json")))

	fp := c.mustRun("fingerprint", c.path("ask.json"))
	assert.Equal(t, fp, c.mustRun("ask", "create", c.path("ask.json"), "--as", alice))
	assert.Equal(t, "true", c.mustRun("ask", "active", fp))
	assert.Equal(t, `[
  "`+fp+`"
]`, c.mustRun("ask", "list", "--filler", bob))

	_, err := c.run("ask", "check", c.path("ask.json"), "--as", bob)
	assert.IsErr(t, errors.ErrTransfer, err)

	c.mustRun("cash", "approve", tokenX, engine, "25", "--as", alice)
	c.mustRun("nft", "approve", punks, "7", engine, "--as", alice)
	c.mustRun("cash", "approve", tokenY, engine, "0x32", "--as", bob)
	assert.Equal(t, "50", c.mustRun("cash", "allowance", tokenY, bob, engine))

	assert.Equal(t, "ok", c.mustRun("ask", "check", c.path("ask.json"), "--as", bob))
	assert.Equal(t, "filled", c.mustRun("ask", "fill", c.path("ask.json"), "--as", bob))
	assert.Equal(t, "false", c.mustRun("ask", "active", fp))

	assert.Equal(t, "75", c.mustRun("cash", "balance", tokenX, alice))
	assert.Equal(t, "25", c.mustRun("cash", "balance", tokenX, bob))
	assert.Equal(t, "50", c.mustRun("cash", "balance", tokenY, alice))
	assert.Equal(t, `{
  "owner": "`+bob+`"
}`, c.mustRun("nft", "owner", punks, "7"))
}

func TestCancelThroughCommands(t *testing.T) {
	c := newCLI(t)
	c.mustRun("init", c.path("genesis.json"))
	fp := c.mustRun("ask", "create", c.path("ask.json"), "--as", alice)

	_, err := c.run("ask", "cancel", "--fingerprint", fp, "--as", bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Equal(t, "cancelled", c.mustRun("ask", "cancel", "--fingerprint", fp, "--as", alice))
	_, err = c.run("ask", "show", fp)
	assert.IsErr(t, errors.ErrNotFound, err)

	// The same ask can be registered again once cancelled.
	assert.Equal(t, fp, c.mustRun("ask", "create", c.path("ask.json"), "--as", alice))
	assert.Equal(t, "cancelled", c.mustRun("ask", "cancel", c.path("ask.json"), "--as", alice))
	assert.Equal(t, "[]", c.mustRun("ask", "list", "--asker", alice))
}

func TestCommandErrors(t *testing.T) {
	c := newCLI(t)
	c.mustRun("init", c.path("genesis.json"))
	require.NoError(t, os.WriteFile(c.path("broken.json"), []byte("{"), 0o600))

	cases := map[string]struct {
		args    []string
		wantErr *errors.Error
	}{
		"missing caller": {
			args:    []string{"ask", "create", c.path("ask.json")},
			wantErr: errors.ErrUnauthorized,
		},
		"caller is not the asker": {
			args:    []string{"ask", "create", c.path("ask.json"), "--as", bob},
			wantErr: errors.ErrUnauthorized,
		},
		"broken ask file": {
			args:    []string{"ask", "create", c.path("broken.json"), "--as", alice},
			wantErr: errors.ErrInput,
		},
		"bad caller address": {
			args:    []string{"ask", "create", c.path("ask.json"), "--as", "0x01"},
			wantErr: errors.ErrInput,
		},
		"cancel needs a single target": {
			args:    []string{"ask", "cancel", c.path("ask.json"), "--fingerprint", "0x00", "--as", alice},
			wantErr: errors.ErrInput,
		},
		"list needs a single party": {
			args:    []string{"ask", "list", "--asker", alice, "--filler", bob},
			wantErr: errors.ErrInput,
		},
		"bad amount": {
			args:    []string{"cash", "approve", tokenX, engine, "lots", "--as", alice},
			wantErr: errors.ErrInput,
		},
		"second init": {
			args:    []string{"init", c.path("genesis.json")},
			wantErr: errors.ErrState,
		},
		"unknown log level": {
			args:    []string{"cash", "balance", tokenX, alice, "--log-level", "loud"},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := c.run(tc.args...)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestOperatorThroughCommands(t *testing.T) {
	c := newCLI(t)
	c.mustRun("init", c.path("genesis.json"))

	c.mustRun("nft", "approve-all", punks, bob, "--as", alice)
	c.mustRun("nft", "approve", punks, "7", bob, "--as", bob)
	assert.Equal(t, `{
  "owner": "`+alice+`",
  "approved": "`+bob+`"
}`, c.mustRun("nft", "owner", punks, "7"))

	c.mustRun("nft", "approve-all", punks, bob, "--revoke", "--as", alice)
	_, err := c.run("nft", "approve", punks, "7", alice, "--as", bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestEnvironmentConfiguresCaller(t *testing.T) {
	c := newCLI(t)
	c.mustRun("init", c.path("genesis.json"))
	t.Setenv("SWAPSIES_AS", alice)

	fp := c.mustRun("ask", "create", c.path("ask.json"))
	assert.Equal(t, "true", c.mustRun("ask", "active", fp))
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Equal(t, swapsies.Version(), c.mustRun("version"))
}

func TestRunReportsErrorCode(t *testing.T) {
	c := newCLI(t)
	var out, errOut bytes.Buffer
	code := run([]string{"--home", c.home, "--log-level", "none", "ask", "show", "0x00"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(errOut.String(), "error 14: "), errOut.String())

	out.Reset()
	assert.Equal(t, 0, run([]string{"version"}, &out, &errOut))
	assert.Equal(t, swapsies.Version()+"\n", out.String())
}
