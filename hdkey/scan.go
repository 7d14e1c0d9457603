package hdkey

import (
	"context"
	"fmt"
	"runtime"

	"github.com/btcsuite/btclog/v2"
	"golang.org/x/sync/errgroup"
)

var (
	// MaxKeyRangeScan is the number of soft children FindChild scans when
	// the caller does not give a limit.
	MaxKeyRangeScan = 100000

	// scanBatchSize is how many children FindChild derives per round.
	scanBatchSize = 512
)

// DeriveRange derives count consecutive children of parent starting at
// start, in parallel. The result is ordered by index. start+count-1 must stay
// below 2^31. On any failure, including cancellation of ctx, no keys are
// returned.
func DeriveRange(ctx context.Context, parent *ExtendedKey, start uint32,
	count int, hardened bool) ([]*ExtendedKey, error) {

	switch {
	case parent == nil:
		return nil, fmt.Errorf("%w: nil parent", ErrInvalidKey)
	case count < 0:
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidIndex, count)
	case count == 0:
		return nil, nil
	case uint64(start)+uint64(count)-1 >= uint64(HardenedKeyStart):
		return nil, fmt.Errorf("%w: range %d+%d does not fit in 31 bits",
			ErrInvalidIndex, start, count)
	case hardened && !parent.private:
		return nil, fmt.Errorf("%w: hardened range needs a private parent",
			ErrInvalidKey)
	}

	keys := make([]*ExtendedKey, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for n := 0; n < count; n++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child, err := DeriveChild(parent, start+uint32(n), hardened)
			if err != nil {
				return err
			}
			keys[n] = child
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		for _, k := range keys {
			if k != nil {
				k.Wipe()
			}
		}
		return nil, err
	}

	log.TraceS(ctx, "Derived key range",
		btclog.Hex6("parent", parent.pub[:]),
		"start", start, "count", count, "hardened", hardened)

	return keys, nil
}

// FindChild returns the soft index below parent whose public key is target,
// scanning indices 0 to maxScan-1. A non-positive maxScan scans
// MaxKeyRangeScan indices. ErrKeyNotFound is returned when no index matches.
func FindChild(ctx context.Context, parent *ExtendedKey, target PublicKey,
	maxScan int) (uint32, error) {

	if parent == nil {
		return 0, fmt.Errorf("%w: nil parent", ErrInvalidKey)
	}
	if maxScan <= 0 {
		maxScan = MaxKeyRangeScan
	}

	// Soft children of the neutered parent have the same public keys and
	// never materialise secrets.
	pub := parent.Neuter()

	for start := 0; start < maxScan; start += scanBatchSize {
		count := min(scanBatchSize, maxScan-start)
		keys, err := DeriveRange(ctx, pub, uint32(start), count, false)
		if err != nil {
			return 0, err
		}
		for i, k := range keys {
			if k.pub == target {
				idx := uint32(start + i)
				log.DebugS(ctx, "Found key in scanned range",
					btclog.Hex6("key", target[:]), "index", idx)
				return idx, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: scanned %d indices", ErrKeyNotFound, maxScan)
}
