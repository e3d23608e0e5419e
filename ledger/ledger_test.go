package ledger

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libsplit-go/auth"
	"github.com/bitfsorg/libsplit-go/revshare"
	"github.com/bitfsorg/libsplit-go/storage"
)

const testAsset = "USD"

var testNow = time.Unix(1_700_000_000, 0)

type fixture struct {
	l       *Ledger
	store   storage.Store
	metrics *Metrics
	admin   *auth.Signer
	creator *auth.Signer
	alice   *auth.Signer
	bob     *auth.Signer
}

func newSigner(t *testing.T) *auth.Signer {
	t.Helper()
	s, err := auth.GenerateSigner()
	require.NoError(t, err)
	return s
}

func sign(t *testing.T, s *auth.Signer, digest []byte) *auth.Proof {
	t.Helper()
	p, err := s.Sign(digest)
	require.NoError(t, err)
	return p
}

// nonce returns the value s must sign into its next call on l.
func nonce(t *testing.T, l *Ledger, s *auth.Signer) uint64 {
	t.Helper()
	n, err := l.Nonce(s.Address())
	require.NoError(t, err)
	return n
}

func gid(n byte) revshare.GroupID {
	var id revshare.GroupID
	id[0] = n
	id[revshare.GroupIDSize-1] = 0xAA
	return id
}

func newLedger(t *testing.T, store storage.Store) (*Ledger, *Metrics) {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	l, err := New(store, nil, &Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: m,
		Now:     func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return l, m
}

// newFixture returns a ledger with an admin and testAsset allowed.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemStore()
	l, m := newLedger(t, store)
	f := &fixture{
		l:       l,
		store:   store,
		metrics: m,
		admin:   newSigner(t),
		creator: newSigner(t),
		alice:   newSigner(t),
		bob:     newSigner(t),
	}
	admin := f.admin.Address()
	require.NoError(t, l.InitializeAdmin(admin, sign(t, f.admin, InitializeAdminDigest(admin, nonce(t, l, f.admin)))))
	require.NoError(t, l.AddSupportedAsset(testAsset, admin, sign(t, f.admin, AssetDigest(testAsset, admin, true, nonce(t, l, f.admin)))))
	return f
}

func (f *fixture) members(aPct, bPct uint32) []revshare.GroupMember {
	return []revshare.GroupMember{
		{Address: f.alice.Address(), Percentage: aPct},
		{Address: f.bob.Address(), Percentage: bPct},
	}
}

func (f *fixture) createOpts(id revshare.GroupID) *CreateOpts {
	return &CreateOpts{
		ID:        id,
		Name:      "band",
		Creator:   f.creator.Address(),
		FeePerUse: 5,
		Asset:     testAsset,
		Members:   f.members(70, 30),
	}
}

func (f *fixture) create(t *testing.T, opts *CreateOpts) (*revshare.Group, error) {
	t.Helper()
	return f.l.Create(opts, sign(t, f.creator, opts.Digest(nonce(t, f.l, f.creator))))
}

func (f *fixture) mustCreate(t *testing.T, id revshare.GroupID) *revshare.Group {
	t.Helper()
	g, err := f.create(t, f.createOpts(id))
	require.NoError(t, err)
	return g
}

func (f *fixture) mint(t *testing.T, to auth.Address, amount int64) {
	t.Helper()
	admin := f.admin.Address()
	require.NoError(t, f.l.Mint(testAsset, to, amount, admin, sign(t, f.admin, MintDigest(testAsset, to, amount, admin, nonce(t, f.l, f.admin)))))
}

func (f *fixture) distribute(t *testing.T, s *auth.Signer, id revshare.GroupID, amount int64) ([]revshare.Distribution, error) {
	t.Helper()
	opts := &DistributeOpts{GroupID: id, Asset: testAsset, Amount: amount, Sender: s.Address()}
	return f.l.Distribute(opts, sign(t, s, opts.Digest(nonce(t, f.l, s))))
}

func (f *fixture) deactivate(t *testing.T, s *auth.Signer, id revshare.GroupID) error {
	t.Helper()
	return f.l.Deactivate(id, s.Address(), sign(t, s, DeactivateDigest(id, s.Address(), nonce(t, f.l, s))))
}

func (f *fixture) delete(t *testing.T, s *auth.Signer, id revshare.GroupID) error {
	t.Helper()
	return f.l.Delete(id, s.Address(), sign(t, s, DeleteDigest(id, s.Address(), nonce(t, f.l, s))))
}

func (f *fixture) pause(t *testing.T) {
	t.Helper()
	admin := f.admin.Address()
	require.NoError(t, f.l.Pause(admin, sign(t, f.admin, PauseDigest(admin, true, nonce(t, f.l, f.admin)))))
}

// --- New ---

func TestNew_Defaults(t *testing.T) {
	l, err := New(storage.NewMemStore(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(DefaultUsageQuota), l.UsageQuota())
	assert.Equal(t, DefaultCustody, l.Custody())
	assert.False(t, l.Custody().IsZero())
}

func TestNew_NilStore(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestNew_CustomQuota(t *testing.T) {
	l, err := New(storage.NewMemStore(), nil, &Options{UsageQuota: 3})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), l.UsageQuota())
}

// --- Create ---

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)
	id := gid(1)

	g := f.mustCreate(t, id)
	assert.True(t, g.Active)
	assert.Equal(t, uint32(DefaultUsageQuota), g.RemainingUsages)
	assert.Equal(t, testNow.Unix(), g.CreatedAt)

	got, err := f.l.Get(id)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	active, err := f.l.IsGroupActive(id)
	require.NoError(t, err)
	assert.True(t, active)

	all, err := f.l.GetAllGroups()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)

	hist, err := f.l.GetGroupPaymentHistory(id)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, revshare.KindCreation, hist[0].Kind)
	assert.Equal(t, int64(0), hist[0].Amount)
	assert.Equal(t, f.creator.Address(), hist[0].Sender)
	assert.Equal(t, revshare.RecordID(id, 0), hist[0].ID)

	userHist, err := f.l.GetUserPaymentHistory(f.creator.Address())
	require.NoError(t, err)
	require.Len(t, userHist, 1)
	assert.Equal(t, hist[0], userHist[0])
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *fixture, o *CreateOpts)
		signer func(f *fixture) *auth.Signer
		want   error
	}{
		{"empty name", func(_ *fixture, o *CreateOpts) { o.Name = "" }, nil, ErrInvalidName},
		{"long name", func(_ *fixture, o *CreateOpts) { o.Name = string(make([]byte, revshare.MaxNameLen+1)) }, nil, ErrInvalidName},
		{"negative fee", func(_ *fixture, o *CreateOpts) { o.FeePerUse = -1 }, nil, ErrInvalidFee},
		{"sum below 100", func(f *fixture, o *CreateOpts) { o.Members = f.members(60, 30) }, nil, ErrInvalidPercentageSum},
		{"sum above 100", func(f *fixture, o *CreateOpts) { o.Members = f.members(80, 30) }, nil, ErrInvalidPercentageSum},
		{"duplicate member", func(f *fixture, o *CreateOpts) {
			o.Members = []revshare.GroupMember{
				{Address: f.alice.Address(), Percentage: 50},
				{Address: f.alice.Address(), Percentage: 50},
			}
		}, nil, ErrDuplicateMember},
		{"no members", func(_ *fixture, o *CreateOpts) { o.Members = nil }, nil, ErrNoMembers},
		{"unsupported asset", func(_ *fixture, o *CreateOpts) { o.Asset = "EUR" }, nil, ErrUnsupportedAsset},
		{"signed by someone else", nil, func(f *fixture) *auth.Signer { return f.alice }, ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			opts := f.createOpts(gid(1))
			if tt.modify != nil {
				tt.modify(f, opts)
			}
			s := f.creator
			if tt.signer != nil {
				s = tt.signer(f)
			}
			_, err := f.l.Create(opts, sign(t, s, opts.Digest(nonce(t, f.l, s))))
			assert.ErrorIs(t, err, tt.want)

			all, err := f.l.GetAllGroups()
			require.NoError(t, err)
			assert.Empty(t, all)
			hist, err := f.l.GetUserPaymentHistory(f.creator.Address())
			require.NoError(t, err)
			assert.Empty(t, hist)
		})
	}
}

func TestCreate_NilProof(t *testing.T) {
	f := newFixture(t)
	_, err := f.l.Create(f.createOpts(gid(1)), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreate_ProofDoesNotCoverChangedMembers(t *testing.T) {
	f := newFixture(t)
	opts := f.createOpts(gid(1))
	proof := sign(t, f.creator, opts.Digest(nonce(t, f.l, f.creator)))
	opts.Members = f.members(10, 90)
	_, err := f.l.Create(opts, proof)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreate_DuplicateID(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, gid(1))
	_, err := f.create(t, f.createOpts(gid(1)))
	assert.ErrorIs(t, err, ErrDuplicateGroupID)
}

func TestCreate_Paused(t *testing.T) {
	f := newFixture(t)
	f.pause(t)
	_, err := f.create(t, f.createOpts(gid(1)))
	assert.ErrorIs(t, err, ErrContractPaused)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.l.Get(gid(9))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.l.IsGroupActive(gid(9))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.l.GetRemainingUsages(gid(9))
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- Deactivate / Delete ---

func TestDeactivate(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)

	assert.ErrorIs(t, f.deactivate(t, f.alice, id), ErrUnauthorized)
	require.NoError(t, f.deactivate(t, f.creator, id))

	active, err := f.l.IsGroupActive(id)
	require.NoError(t, err)
	assert.False(t, active)

	assert.ErrorIs(t, f.deactivate(t, f.creator, id), ErrGroupInactive)
	assert.ErrorIs(t, f.deactivate(t, f.creator, gid(2)), ErrNotFound)
}

func TestDeactivate_ByAdmin(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)
	require.NoError(t, f.deactivate(t, f.admin, id))
}

func TestDelete_Lifecycle(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	other := gid(2)
	f.mustCreate(t, id)
	f.mustCreate(t, other)
	f.mint(t, f.bob.Address(), 1000)
	_, err := f.distribute(t, f.bob, id, 1000)
	require.NoError(t, err)

	assert.ErrorIs(t, f.delete(t, f.creator, id), ErrGroupNotDeactivated)
	require.NoError(t, f.deactivate(t, f.creator, id))
	assert.ErrorIs(t, f.delete(t, f.alice, id), ErrUnauthorized)
	require.NoError(t, f.delete(t, f.creator, id))

	_, err = f.l.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	all, err := f.l.GetAllGroups()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, other, all[0].ID)

	earned, err := f.l.GetMemberEarnings(f.alice.Address(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(700), earned)
	hist, err := f.l.GetGroupPaymentHistory(id)
	require.NoError(t, err)
	assert.Len(t, hist, 2)

	_, err = f.create(t, f.createOpts(id))
	assert.ErrorIs(t, err, ErrDuplicateGroupID)
	assert.ErrorIs(t, f.delete(t, f.creator, id), ErrNotFound)
}

func TestDelete_KeepsHistory(t *testing.T) {
	tests := []struct {
		name      string
		exhausted bool
	}{
		{"full quota", false},
		{"zero quota", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := gid(1)
			f.mustCreate(t, id)
			f.mint(t, f.bob.Address(), 100)
			_, err := f.distribute(t, f.bob, id, 100)
			require.NoError(t, err)

			if tt.exhausted {
				for i := 0; i < DefaultUsageQuota+2; i++ {
					_, err := f.l.ReduceUsage(id)
					require.NoError(t, err)
				}
				left, err := f.l.GetRemainingUsages(id)
				require.NoError(t, err)
				require.Zero(t, left)
			}

			historyLens := func() (group, creator, sender int) {
				t.Helper()
				g, err := f.l.GetGroupPaymentHistory(id)
				require.NoError(t, err)
				c, err := f.l.GetUserPaymentHistory(f.creator.Address())
				require.NoError(t, err)
				s, err := f.l.GetUserPaymentHistory(f.bob.Address())
				require.NoError(t, err)
				return len(g), len(c), len(s)
			}
			groupBefore, creatorBefore, senderBefore := historyLens()

			require.NoError(t, f.deactivate(t, f.creator, id))
			require.NoError(t, f.delete(t, f.creator, id))

			groupAfter, creatorAfter, senderAfter := historyLens()
			assert.Equal(t, groupBefore, groupAfter)
			assert.Equal(t, creatorBefore, creatorAfter)
			assert.Equal(t, senderBefore, senderAfter)
			assert.Equal(t, 1, senderAfter)

			_, err = f.l.Get(id)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDelete_ByAdmin(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)
	require.NoError(t, f.deactivate(t, f.creator, id))
	require.NoError(t, f.delete(t, f.admin, id))
}

func TestDelete_Paused(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)
	require.NoError(t, f.deactivate(t, f.creator, id))
	f.pause(t)
	assert.ErrorIs(t, f.delete(t, f.creator, id), ErrContractPaused)
	_, err := f.l.Get(id)
	assert.NoError(t, err)
}

// --- Usage ---

func TestReduceUsage_Saturates(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)

	for i := DefaultUsageQuota - 1; i >= 0; i-- {
		left, err := f.l.ReduceUsage(id)
		require.NoError(t, err)
		assert.Equal(t, uint32(i), left)
	}
	left, err := f.l.ReduceUsage(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), left)

	got, err := f.l.GetRemainingUsages(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got)
}

func TestReduceUsage_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.l.ReduceUsage(gid(1))
	assert.ErrorIs(t, err, ErrNotFound)

	f.mustCreate(t, gid(1))
	f.pause(t)
	_, err = f.l.ReduceUsage(gid(1))
	assert.ErrorIs(t, err, ErrContractPaused)
	got, err := f.l.GetRemainingUsages(gid(1))
	require.NoError(t, err)
	assert.Equal(t, uint32(DefaultUsageQuota), got)
}

// --- Distribute ---

func TestDistribute_Accumulates(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)
	sender := f.creator
	f.mint(t, sender.Address(), 2000)

	shares, err := f.distribute(t, sender, id, 1000)
	require.NoError(t, err)
	assert.Equal(t, []revshare.Distribution{
		{Address: f.alice.Address(), Amount: 700},
		{Address: f.bob.Address(), Amount: 300},
	}, shares)

	_, err = f.distribute(t, sender, id, 500)
	require.NoError(t, err)

	aliceEarned, err := f.l.GetMemberEarnings(f.alice.Address(), id)
	require.NoError(t, err)
	bobEarned, err := f.l.GetMemberEarnings(f.bob.Address(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), aliceEarned)
	assert.Equal(t, int64(450), bobEarned)

	balances := map[auth.Address]int64{
		sender.Address(): 500,
		f.alice.Address(): 1050,
		f.bob.Address():   450,
		f.l.Custody():     0,
	}
	for addr, want := range balances {
		got, err := f.l.Balance(testAsset, addr)
		require.NoError(t, err)
		assert.Equal(t, want, got, addr.String())
	}

	hist, err := f.l.GetGroupPaymentHistory(id)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, revshare.KindDistribution, hist[1].Kind)
	assert.Equal(t, int64(1000), hist[1].Amount)
	assert.Equal(t, int64(500), hist[2].Amount)
	assert.Equal(t, revshare.RecordID(id, 2), hist[2].ID)

	remaining, err := f.l.GetRemainingUsages(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(DefaultUsageQuota), remaining)
}

func TestDistribute_RemainderToLastMember(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	opts := f.createOpts(id)
	opts.Members = f.members(50, 50)
	_, err := f.create(t, opts)
	require.NoError(t, err)
	f.mint(t, f.creator.Address(), 1)

	shares, err := f.distribute(t, f.creator, id, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), shares[0].Amount)
	assert.Equal(t, int64(1), shares[1].Amount)
}

func TestDistribute_InsufficientBalanceRollsBack(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)
	f.mint(t, f.creator.Address(), 100)

	_, err := f.distribute(t, f.creator, id, 101)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	bal, err := f.l.Balance(testAsset, f.creator.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
	earned, err := f.l.GetMemberEarnings(f.alice.Address(), id)
	require.NoError(t, err)
	assert.Zero(t, earned)
	hist, err := f.l.GetGroupPaymentHistory(id)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestDistribute_Rejections(t *testing.T) {
	f := newFixture(t)
	id := gid(1)
	f.mustCreate(t, id)
	inactive := gid(2)
	f.mustCreate(t, inactive)
	require.NoError(t, f.deactivate(t, f.creator, inactive))
	f.mint(t, f.creator.Address(), 1000)

	send := func(opts *DistributeOpts) error {
		_, err := f.l.Distribute(opts, sign(t, f.creator, opts.Digest(nonce(t, f.l, f.creator))))
		return err
	}
	sender := f.creator.Address()

	assert.ErrorIs(t, send(&DistributeOpts{GroupID: gid(9), Asset: testAsset, Amount: 10, Sender: sender}), ErrNotFound)
	assert.ErrorIs(t, send(&DistributeOpts{GroupID: inactive, Asset: testAsset, Amount: 10, Sender: sender}), ErrGroupInactive)
	assert.ErrorIs(t, send(&DistributeOpts{GroupID: id, Asset: "EUR", Amount: 10, Sender: sender}), ErrAssetMismatch)
	assert.ErrorIs(t, send(&DistributeOpts{GroupID: id, Asset: testAsset, Amount: 0, Sender: sender}), ErrInvalidAmount)
	assert.ErrorIs(t, send(&DistributeOpts{GroupID: id, Asset: testAsset, Amount: -5, Sender: sender}), ErrInvalidAmount)
	assert.ErrorIs(t, send(&DistributeOpts{GroupID: id, Asset: testAsset, Amount: 10, Sender: f.alice.Address()}), ErrUnauthorized)

	_, err := f.l.Distribute(nil, nil)
	assert.ErrorIs(t, err, ErrNilParam)

	f.pause(t)
	assert.ErrorIs(t, send(&DistributeOpts{GroupID: id, Asset: testAsset, Amount: 10, Sender: sender}), ErrContractPaused)

	bal, err := f.l.Balance(testAsset, sender)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal)
}

// --- Earnings and history ---

func TestGetMemberEarnings_UnknownIsZero(t *testing.T) {
	f := newFixture(t)
	earned, err := f.l.GetMemberEarnings(f.alice.Address(), gid(42))
	require.NoError(t, err)
	assert.Zero(t, earned)
}

func TestUserHistory_AcrossGroups(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, gid(1))
	f.mustCreate(t, gid(2))
	f.mint(t, f.bob.Address(), 100)
	_, err := f.distribute(t, f.bob, gid(2), 40)
	require.NoError(t, err)
	_, err = f.distribute(t, f.bob, gid(1), 60)
	require.NoError(t, err)

	hist, err := f.l.GetUserPaymentHistory(f.bob.Address())
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, gid(2), hist[0].GroupID)
	assert.Equal(t, gid(1), hist[1].GroupID)

	creatorHist, err := f.l.GetUserPaymentHistory(f.creator.Address())
	require.NoError(t, err)
	assert.Len(t, creatorHist, 2)
}

// --- Pagination ---

func TestGetGroupsPaginated(t *testing.T) {
	f := newFixture(t)
	for i := byte(1); i <= 25; i++ {
		f.mustCreate(t, gid(i))
	}

	tests := []struct {
		name          string
		offset, limit uint32
		wantLen       int
		wantLimit     uint32
		wantFirst     byte
	}{
		{"first page", 0, 10, 10, 10, 1},
		{"last partial page", 20, 10, 5, 10, 21},
		{"past the end", 30, 10, 0, 10, 0},
		{"limit clamped", 0, 100, DefaultMaxPageSize, DefaultMaxPageSize, 1},
		{"zero limit", 5, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.l.GetGroupsPaginated(tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, uint32(25), page.Total)
			assert.Equal(t, tt.offset, page.Offset)
			assert.Equal(t, tt.wantLimit, page.Limit)
			require.Len(t, page.Groups, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, gid(tt.wantFirst), page.Groups[0].ID)
			}
		})
	}
}

func TestGetGroupsPaginated_OrderAfterDelete(t *testing.T) {
	f := newFixture(t)
	for i := byte(1); i <= 3; i++ {
		f.mustCreate(t, gid(i))
	}
	require.NoError(t, f.deactivate(t, f.creator, gid(2)))
	require.NoError(t, f.delete(t, f.creator, gid(2)))

	page, err := f.l.GetGroupsPaginated(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), page.Total)
	require.Len(t, page.Groups, 2)
	assert.Equal(t, gid(1), page.Groups[0].ID)
	assert.Equal(t, gid(3), page.Groups[1].ID)
}

// --- Persistence ---

func TestLedger_BoltPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := storage.OpenBoltStore(path)
	require.NoError(t, err)

	l, _ := newLedger(t, store)
	admin, creator := newSigner(t), newSigner(t)
	require.NoError(t, l.InitializeAdmin(admin.Address(), sign(t, admin, InitializeAdminDigest(admin.Address(), nonce(t, l, admin)))))
	require.NoError(t, l.AddSupportedAsset(testAsset, admin.Address(), sign(t, admin, AssetDigest(testAsset, admin.Address(), true, nonce(t, l, admin)))))
	opts := &CreateOpts{
		ID:      gid(1),
		Name:    "persisted",
		Creator: creator.Address(),
		Asset:   testAsset,
		Members: []revshare.GroupMember{{Address: creator.Address(), Percentage: 100}},
	}
	_, err = l.Create(opts, sign(t, creator, opts.Digest(nonce(t, l, creator))))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = storage.OpenBoltStore(path)
	require.NoError(t, err)
	defer store.Close()
	l, _ = newLedger(t, store)

	g, err := l.Get(gid(1))
	require.NoError(t, err)
	assert.Equal(t, "persisted", g.Name)
	got, err := l.Admin()
	require.NoError(t, err)
	assert.Equal(t, admin.Address(), got)
	hist, err := l.GetGroupPaymentHistory(gid(1))
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}
