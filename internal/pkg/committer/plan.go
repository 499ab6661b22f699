// Package committer implements the Golden Mutation Pattern for Spanner transactions.
//
// Repositories never apply their own writes. They return Spanner mutations,
// which are collected into a CommitPlan together with the outbox rows for the
// aggregate's domain events, and the whole plan is applied atomically:
//
//	plan := committer.NewPlan()
//	plan.Add(model.UpdateMut(sku, updates))
//	for _, event := range entry.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(enriched(event)))
//	}
//	return committer.ApplyWithVersionCheck(ctx, check, plan)
//
// Either every mutation lands or none does, so an entry is never saved without
// its events (or the reverse).
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// ErrOptimisticLockConflict is returned when the stored version no longer matches
// the version the aggregate was loaded with.
var ErrOptimisticLockConflict = errors.New("optimistic lock conflict")

// CommitPlan is a typed wrapper around Spanner mutations for the Golden Mutation Pattern.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// VersionCheck identifies the row whose version column guards a plan.
type VersionCheck struct {
	Table           string
	Key             spanner.Key
	VersionColumn   string
	ExpectedVersion int64
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
// An insert that collides with an existing key is reported as ErrOptimisticLockConflict.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: row already exists", ErrOptimisticLockConflict)
		}
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithVersionCheck executes the CommitPlan with optimistic locking.
// It reads the guarded row's version inside a read-write transaction and only
// buffers the plan when it still equals check.ExpectedVersion.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, check.Table, check.Key, []string{check.VersionColumn})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return fmt.Errorf("%w: row %v no longer exists", ErrOptimisticLockConflict, check.Key)
			}
			return fmt.Errorf("failed to read version: %w", err)
		}

		var currentVersion int64
		if err := row.Column(0, &currentVersion); err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}

		if currentVersion != check.ExpectedVersion {
			return fmt.Errorf("%w: expected version %d, got %d", ErrOptimisticLockConflict, check.ExpectedVersion, currentVersion)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrOptimisticLockConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}
