package core

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/userdirectory/internal/data"
	"github.com/siahsang/userdirectory/internal/utils/collectionutils"
)

// MemoryCore keeps users in process memory. A user is created by claiming its
// email and then its username; a failed username claim releases the email.
type MemoryCore struct {
	log    *slog.Logger
	nextID atomic.Int64
	users  *collectionutils.SafeMap[string, *data.User]
	emails *collectionutils.SafeMap[string, string]
	now    func() time.Time
}

func NewMemoryCore(log *slog.Logger) *MemoryCore {
	return &MemoryCore{
		log:    log,
		users:  collectionutils.New[string, *data.User](),
		emails: collectionutils.New[string, string](),
		now:    time.Now,
	}
}

// CreateNewUser fills ID, DateJoined and IsActive. Like a Postgres sequence, an
// id taken by a rejected insert is not reused.
func (c *MemoryCore) CreateNewUser(ctx context.Context, user *data.User) error {
	if err := ctx.Err(); err != nil {
		return xerrors.New(err)
	}

	if !c.emails.StoreIfAbsent(user.Email, user.Username) {
		return xerrors.New(ErrDuplicateEmail)
	}

	stored := *user
	stored.ID = c.nextID.Add(1)
	stored.DateJoined = c.now().UTC()
	stored.IsActive = true

	if !c.users.StoreIfAbsent(stored.Username, &stored) {
		c.emails.Delete(user.Email)
		return xerrors.New(ErrDuplicateUsername)
	}

	user.ID = stored.ID
	user.DateJoined = stored.DateJoined
	user.IsActive = stored.IsActive

	c.log.Info("User created", "user_id", user.ID, "username", user.Username)
	return nil
}

func (c *MemoryCore) GetAllUsers(ctx context.Context) ([]*data.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	stored := c.users.Values()
	users := make([]*data.User, 0, len(stored))
	for _, user := range stored {
		u := *user
		users = append(users, &u)
	}
	slices.SortFunc(users, func(a, b *data.User) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return users, nil
}
