package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/entity"
	"github.com/imnotmomo/dokku/restroom-service/internal/app/restrooms/repository"
)

// ===================== Restroom Tests =====================

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := &entity.Restroom{Name: "First"}
	second := &entity.Restroom{Name: "Second"}

	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestStore_GetByID_NotFound(t *testing.T) {
	store := NewStore()

	_, err := store.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, repository.ErrRestroomNotFound)
}

func TestStore_GetByID_ReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &entity.Restroom{Name: "Original"}))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestStore_GetAll_SortedByID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, store.Create(ctx, &entity.Restroom{Name: name}))
	}

	all, err := store.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[2].ID)
}

func TestStore_UpdateAvgRating(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &entity.Restroom{Name: "Test"}))

	require.NoError(t, store.UpdateAvgRating(ctx, 1, 4.5))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.AvgRating)
}

func TestStore_IncrementVisit_Concurrent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &entity.Restroom{Name: "Busy"}))

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := store.IncrementVisit(ctx, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.VisitCount)
}

// ===================== Review Tests =====================

func TestStore_Reviews_SortRecent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	reviews := store.Reviews()

	old := entity.Review{RestroomID: 1, Rating: 3, CreatedAt: time.Now().Add(-time.Hour)}
	fresh := entity.Review{RestroomID: 1, Rating: 5, CreatedAt: time.Now()}
	require.NoError(t, reviews.Create(ctx, &old))
	require.NoError(t, reviews.Create(ctx, &fresh))

	got, err := reviews.GetByRestroomID(ctx, 1, repository.SortRecent)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Rating)
	assert.Equal(t, 3, got[1].Rating)
}

func TestStore_Reviews_SortHelpful(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	reviews := store.Reviews()

	popular := entity.Review{RestroomID: 1, Rating: 4, HelpfulVotes: 10, CreatedAt: time.Now().Add(-time.Hour)}
	fresh := entity.Review{RestroomID: 1, Rating: 5, HelpfulVotes: 2, CreatedAt: time.Now()}
	require.NoError(t, reviews.Create(ctx, &popular))
	require.NoError(t, reviews.Create(ctx, &fresh))

	got, err := reviews.GetByRestroomID(ctx, 1, repository.SortHelpful)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].HelpfulVotes)
}

func TestStore_Reviews_AssignsObjectID(t *testing.T) {
	store := NewStore()
	review := entity.Review{RestroomID: 1, Rating: 4}

	require.NoError(t, store.Reviews().Create(context.Background(), &review))

	assert.False(t, review.ID.IsZero())
}

func TestStore_Reviews_EmptyForUnknownRestroom(t *testing.T) {
	store := NewStore()

	got, err := store.Reviews().GetByRestroomID(context.Background(), 99, repository.SortRecent)

	require.NoError(t, err)
	assert.Empty(t, got)
}

// ===================== Proposal Tests =====================

func TestStore_Proposals_CreateAndList(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	proposals := store.Proposals()

	name := "New Name"
	proposal := entity.EditProposal{
		RestroomID:     1,
		ProposedName:   &name,
		ProposerUserID: "user-1",
		Status:         entity.ProposalStatusPending,
	}
	require.NoError(t, proposals.Create(ctx, &proposal))
	assert.Equal(t, int64(1), proposal.ID)

	got, err := proposals.GetByRestroomID(ctx, 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.ProposalStatusPending, got[0].Status)
}
