package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/config"
	"github.com/bitfsorg/libsplit-go/ledger"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/wallet"
)

type command struct {
	usage string
	run   func(e *env, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"init":       {"init [-network n] [-words 12|24]", cmdInit},
		"address":    {"address", cmdAddress},
		"admin-init": {"admin-init", cmdAdminInit},
		"allow":      {"allow [-remove] <asset>", cmdAllow},
		"pause":      {"pause", cmdPause(true)},
		"unpause":    {"unpause", cmdPause(false)},
		"mint":       {"mint <asset> <address> <amount>", cmdMint},
		"balance":    {"balance <asset> [address]", cmdBalance},
		"create":     {"create [-id hex] [-fee n] <name> <asset> <address:percent>...", cmdCreate},
		"show":       {"show <group>", cmdShow},
		"list":       {"list [-offset n] [-limit n]", cmdList},
		"deactivate": {"deactivate <group>", cmdDeactivate},
		"delete":     {"delete <group>", cmdDelete},
		"use":        {"use <group>", cmdUse},
		"distribute": {"distribute <group> <asset> <amount>", cmdDistribute},
		"earnings":   {"earnings <group> [address]", cmdEarnings},
		"history":    {"history (-group id | -user address)", cmdHistory},
		"fundraise":  {"fundraise <group> [target]", cmdFundraise},
	}
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// parseArgs parses flags for a subcommand and checks its positional count.
func parseArgs(name string, fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errUsage, commands[name].usage, err)
	}
	if fs.NArg() < minArgs || (maxArgs >= 0 && fs.NArg() > maxArgs) {
		return nil, fmt.Errorf("%w: %s", errUsage, commands[name].usage)
	}
	return fs.Args(), nil
}

func parseAmount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", errUsage, s)
	}
	return n, nil
}

// parseMembers parses "address:percent" pairs.
func parseMembers(args []string) ([]revshare.GroupMember, error) {
	members := make([]revshare.GroupMember, 0, len(args))
	for _, arg := range args {
		addrHex, pctStr, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("%w: member %q is not address:percent", errUsage, arg)
		}
		addr, err := auth.ParseAddress(addrHex)
		if err != nil {
			return nil, err
		}
		pct, err := strconv.ParseUint(pctStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: percent %q", errUsage, pctStr)
		}
		members = append(members, revshare.GroupMember{Address: addr, Percentage: uint32(pct)})
	}
	return members, nil
}

func cmdInit(e *env, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	network := fs.String("network", "mainnet", "mainnet, testnet or regtest")
	words := fs.Int("words", 12, "mnemonic length (12 or 24)")
	if _, err := parseArgs("init", fs, args, 0, 0); err != nil {
		return err
	}
	if e.password == "" {
		return fmt.Errorf("%w: set -password or SPLITLEDGER_PASSWORD", errUsage)
	}

	cfg := config.DefaultConfig()
	cfg.DataDir = e.dataDir
	cfg.Network = *network
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	bits := wallet.Mnemonic12Words
	if *words == 24 {
		bits = wallet.Mnemonic24Words
	}

	mnemonic, err := wallet.InitKeystore(wallet.KeystorePath(e.dataDir), "", e.password, bits)
	if err != nil {
		return err
	}
	if err := config.SaveConfig(config.ConfigPath(e.dataDir), cfg); err != nil {
		return err
	}
	e.printf("initialized %s\nmnemonic: %s\n", e.dataDir, mnemonic)
	return nil
}

func cmdAddress(e *env, args []string) error {
	if _, err := parseArgs("address", nil, args, 0, 0); err != nil {
		return err
	}
	id, err := e.signer()
	if err != nil {
		return err
	}
	e.printf("%s %s %s\n", id.Address(), id.DisplayAddress, id.Path)
	return nil
}

func cmdAdminInit(e *env, args []string) error {
	if _, err := parseArgs("admin-init", nil, args, 0, 0); err != nil {
		return err
	}
	l, id, proof, err := e.sign(ledger.InitializeAdminDigest)
	if err != nil {
		return err
	}
	if err := l.InitializeAdmin(id.Address(), proof); err != nil {
		return err
	}
	e.printf("admin %s\n", id.Address())
	return nil
}

func cmdAllow(e *env, args []string) error {
	fs := flag.NewFlagSet("allow", flag.ContinueOnError)
	remove := fs.Bool("remove", false, "remove the asset from the allow-list")
	pos, err := parseArgs("allow", fs, args, 1, 1)
	if err != nil {
		return err
	}
	assetID := pos[0]
	l, id, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
		return ledger.AssetDigest(assetID, self, !*remove, n)
	})
	if err != nil {
		return err
	}
	if *remove {
		return l.RemoveSupportedAsset(assetID, id.Address(), proof)
	}
	return l.AddSupportedAsset(assetID, id.Address(), proof)
}

func cmdPause(paused bool) func(e *env, args []string) error {
	name := "unpause"
	if paused {
		name = "pause"
	}
	return func(e *env, args []string) error {
		if _, err := parseArgs(name, nil, args, 0, 0); err != nil {
			return err
		}
		l, id, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
			return ledger.PauseDigest(self, paused, n)
		})
		if err != nil {
			return err
		}
		if paused {
			return l.Pause(id.Address(), proof)
		}
		return l.Unpause(id.Address(), proof)
	}
}

func cmdMint(e *env, args []string) error {
	pos, err := parseArgs("mint", nil, args, 3, 3)
	if err != nil {
		return err
	}
	to, err := auth.ParseAddress(pos[1])
	if err != nil {
		return err
	}
	amount, err := parseAmount(pos[2])
	if err != nil {
		return err
	}
	l, id, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
		return ledger.MintDigest(pos[0], to, amount, self, n)
	})
	if err != nil {
		return err
	}
	return l.Mint(pos[0], to, amount, id.Address(), proof)
}

// addressArg returns the address in pos at i, or the signing identity's.
func (e *env) addressArg(pos []string, i int) (auth.Address, error) {
	if len(pos) > i {
		return auth.ParseAddress(pos[i])
	}
	id, err := e.signer()
	if err != nil {
		return auth.Address{}, err
	}
	return id.Address(), nil
}

func cmdBalance(e *env, args []string) error {
	pos, err := parseArgs("balance", nil, args, 1, 2)
	if err != nil {
		return err
	}
	owner, err := e.addressArg(pos, 1)
	if err != nil {
		return err
	}
	l, err := e.openLedger()
	if err != nil {
		return err
	}
	bal, err := l.Balance(pos[0], owner)
	if err != nil {
		return err
	}
	e.printf("%d\n", bal)
	return nil
}

func cmdCreate(e *env, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	idHex := fs.String("id", "", "group id (64 hex chars, random if empty)")
	fee := fs.Int64("fee", 0, "fee per use")
	pos, err := parseArgs("create", fs, args, 3, -1)
	if err != nil {
		return err
	}

	var gid revshare.GroupID
	if *idHex != "" {
		if gid, err = revshare.ParseGroupID(*idHex); err != nil {
			return err
		}
	} else if _, err := rand.Read(gid[:]); err != nil {
		return fmt.Errorf("generate group id: %w", err)
	}
	members, err := parseMembers(pos[2:])
	if err != nil {
		return err
	}

	opts := &ledger.CreateOpts{
		ID:        gid,
		Name:      pos[0],
		FeePerUse: *fee,
		Asset:     pos[1],
		Members:   members,
	}
	l, _, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
		opts.Creator = self
		return opts.Digest(n)
	})
	if err != nil {
		return err
	}
	g, err := l.Create(opts, proof)
	if err != nil {
		return err
	}
	e.printf("%s\n", g.ID)
	return nil
}

func groupArg(pos []string) (revshare.GroupID, error) {
	return revshare.ParseGroupID(pos[0])
}

func (e *env) printGroup(g *revshare.Group) {
	state := "active"
	if !g.Active {
		state = "inactive"
	}
	e.printf("%s %q %s asset=%s fee=%d uses=%d created=%s\n",
		g.ID, g.Name, state, g.Asset, g.FeePerUse, g.RemainingUsages,
		time.Unix(g.CreatedAt, 0).UTC().Format(time.RFC3339))
}

func cmdShow(e *env, args []string) error {
	pos, err := parseArgs("show", nil, args, 1, 1)
	if err != nil {
		return err
	}
	gid, err := groupArg(pos)
	if err != nil {
		return err
	}
	l, err := e.openLedger()
	if err != nil {
		return err
	}
	g, err := l.Get(gid)
	if err != nil {
		return err
	}
	e.printGroup(g)
	e.printf("creator %s\n", g.Creator)
	for _, m := range g.Members {
		e.printf("  %s %d%%\n", m.Address, m.Percentage)
	}
	return nil
}

func cmdList(e *env, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	offset := fs.Uint("offset", 0, "first group")
	limit := fs.Uint("limit", ledger.DefaultMaxPageSize, "page size")
	if _, err := parseArgs("list", fs, args, 0, 0); err != nil {
		return err
	}
	l, err := e.openLedger()
	if err != nil {
		return err
	}
	page, err := l.GetGroupsPaginated(uint32(*offset), uint32(*limit))
	if err != nil {
		return err
	}
	for _, g := range page.Groups {
		e.printGroup(g)
	}
	e.printf("%d-%d of %d\n", page.Offset, int(page.Offset)+len(page.Groups), page.Total)
	return nil
}

func cmdDeactivate(e *env, args []string) error {
	return groupMutation(e, "deactivate", args, ledger.DeactivateDigest, (*ledger.Ledger).Deactivate)
}

func cmdDelete(e *env, args []string) error {
	return groupMutation(e, "delete", args, ledger.DeleteDigest, (*ledger.Ledger).Delete)
}

func groupMutation(
	e *env, name string, args []string,
	digest func(revshare.GroupID, auth.Address, uint64) []byte,
	call func(*ledger.Ledger, revshare.GroupID, auth.Address, *auth.Proof) error,
) error {
	pos, err := parseArgs(name, nil, args, 1, 1)
	if err != nil {
		return err
	}
	gid, err := groupArg(pos)
	if err != nil {
		return err
	}
	l, id, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
		return digest(gid, self, n)
	})
	if err != nil {
		return err
	}
	return call(l, gid, id.Address(), proof)
}

func cmdUse(e *env, args []string) error {
	pos, err := parseArgs("use", nil, args, 1, 1)
	if err != nil {
		return err
	}
	gid, err := groupArg(pos)
	if err != nil {
		return err
	}
	l, err := e.openLedger()
	if err != nil {
		return err
	}
	left, err := l.ReduceUsage(gid)
	if err != nil {
		return err
	}
	e.printf("%d uses left\n", left)
	return nil
}

func cmdDistribute(e *env, args []string) error {
	pos, err := parseArgs("distribute", nil, args, 3, 3)
	if err != nil {
		return err
	}
	gid, err := groupArg(pos)
	if err != nil {
		return err
	}
	amount, err := parseAmount(pos[2])
	if err != nil {
		return err
	}
	opts := &ledger.DistributeOpts{GroupID: gid, Asset: pos[1], Amount: amount}
	l, _, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
		opts.Sender = self
		return opts.Digest(n)
	})
	if err != nil {
		return err
	}
	shares, err := l.Distribute(opts, proof)
	if err != nil {
		return err
	}
	for _, s := range shares {
		e.printf("%s %d\n", s.Address, s.Amount)
	}
	return nil
}

func cmdEarnings(e *env, args []string) error {
	pos, err := parseArgs("earnings", nil, args, 1, 2)
	if err != nil {
		return err
	}
	gid, err := groupArg(pos)
	if err != nil {
		return err
	}
	member, err := e.addressArg(pos, 1)
	if err != nil {
		return err
	}
	l, err := e.openLedger()
	if err != nil {
		return err
	}
	total, err := l.GetMemberEarnings(member, gid)
	if err != nil {
		return err
	}
	e.printf("%d\n", total)
	return nil
}

func cmdHistory(e *env, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	groupHex := fs.String("group", "", "group id")
	userHex := fs.String("user", "", "sender address")
	if _, err := parseArgs("history", fs, args, 0, 0); err != nil {
		return err
	}
	if (*groupHex == "") == (*userHex == "") {
		return fmt.Errorf("%w: %s", errUsage, commands["history"].usage)
	}
	l, err := e.openLedger()
	if err != nil {
		return err
	}

	var records []*revshare.PaymentRecord
	if *groupHex != "" {
		gid, err := revshare.ParseGroupID(*groupHex)
		if err != nil {
			return err
		}
		records, err = l.GetGroupPaymentHistory(gid)
		if err != nil {
			return err
		}
	} else {
		addr, err := auth.ParseAddress(*userHex)
		if err != nil {
			return err
		}
		records, err = l.GetUserPaymentHistory(addr)
		if err != nil {
			return err
		}
	}
	for _, r := range records {
		e.printf("%s %s %s group=%s sender=%s %d %s\n",
			time.Unix(r.Timestamp, 0).UTC().Format(time.RFC3339), r.ID, r.Kind, r.GroupID, r.Sender, r.Amount, r.Asset)
	}
	return nil
}

func cmdFundraise(e *env, args []string) error {
	pos, err := parseArgs("fundraise", nil, args, 1, 2)
	if err != nil {
		return err
	}
	gid, err := groupArg(pos)
	if err != nil {
		return err
	}

	if len(pos) == 2 {
		target, err := parseAmount(pos[1])
		if err != nil {
			return err
		}
		l, id, proof, err := e.sign(func(self auth.Address, n uint64) []byte {
			return ledger.StartFundraisingDigest(gid, target, self, n)
		})
		if err != nil {
			return err
		}
		if err := l.StartFundraising(gid, target, id.Address(), proof); err != nil {
			return err
		}
	}

	l, err := e.openLedger()
	if err != nil {
		return err
	}
	status, err := l.GetFundraisingStatus(gid)
	if err != nil {
		return err
	}
	e.printf("raised %d of %d active=%t\n", status.TotalRaised, status.TargetAmount, status.IsActive)
	return nil
}
