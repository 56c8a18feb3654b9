// Command heaptrace replays allocation traces against a goheap Heap
// and reports accounting. Without a trace file it generates a random
// malloc/free workload.
package main

import "flag"
import "math/rand"
import "time"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/goheap/heap"

var options struct {
	trace     string
	n         int
	capacity  int64
	chunksize int64
	check     bool
	seed      int64
}

func argParse() {
	flag.StringVar(&options.trace, "trace", "",
		"malloc-lab trace file to replay, random workload when empty")
	flag.IntVar(&options.n, "n", 100000,
		"number of random operations when no trace is given")
	flag.Int64Var(&options.capacity, "capacity", 0,
		"heap capacity in bytes, 0 picks a default from free memory")
	flag.Int64Var(&options.chunksize, "chunksize", heap.Chunksize,
		"arena growth increment in bytes")
	flag.BoolVar(&options.check, "check", false,
		"run the consistency checker after every operation")
	flag.Int64Var(&options.seed, "seed", time.Now().UnixNano(),
		"seed for the random workload")
	flag.Parse()

	if options.capacity == 0 {
		options.capacity = heap.Defaultcapacity()
	}
}

func main() {
	argParse()

	setts := s.Settings{"chunksize": options.chunksize}
	h, err := heap.NewHeap(options.capacity, setts)
	if err != nil {
		log.Fatalf("heaptrace: %v\n", err)
		return
	}

	start := time.Now()
	nops := 0
	if options.trace != "" {
		nops = replay(h, options.trace)
	} else {
		nops = random(h, options.n, options.seed)
	}
	elapsed := time.Since(start)

	if errs := h.Check(); len(errs) > 0 {
		for _, err := range errs {
			log.Errorf("heaptrace: %v\n", err)
		}
		log.Fatalf("heaptrace: heap inconsistent after replay\n")
		return
	}
	log.Infof("heaptrace: %v ops in %v\n", nops, elapsed)
	h.Log()
}

func replay(h *heap.Heap, filename string) int {
	ops, slots, err := readtrace(filename)
	if err != nil {
		log.Fatalf("heaptrace: %v\n", err)
		return 0
	}
	log.Infof("heaptrace: replaying %v ops from %q\n", len(ops), filename)

	offs := make([]int64, slots)
	for i, op := range ops {
		switch op.op {
		case 'a':
			if offs[op.index] = h.Malloc(op.size); offs[op.index] == 0 {
				log.Fatalf("heaptrace: op %v: malloc(%v) failed\n", i, op.size)
				return i
			}
		case 'r':
			off := h.Realloc(offs[op.index], op.size)
			if off == 0 && op.size > 0 {
				log.Fatalf(
					"heaptrace: op %v: realloc(%v) failed\n", i, op.size)
				return i
			}
			offs[op.index] = off
		case 'f':
			h.Free(offs[op.index])
			offs[op.index] = 0
		}
		if options.check {
			h.Validate()
		}
	}
	return len(ops)
}

func random(h *heap.Heap, n int, seed int64) int {
	rnd := rand.New(rand.NewSource(seed))
	log.Infof("heaptrace: random workload of %v ops, seed %v\n", n, seed)

	live := make([]int64, 0, 1024)
	for i := 0; i < n; i++ {
		if len(live) == 0 || rnd.Intn(3) > 0 {
			size := int64(rnd.Intn(4096) + 1)
			off := h.Malloc(size)
			if off == 0 {
				log.Fatalf("heaptrace: op %v: malloc(%v) failed\n", i, size)
				return i
			}
			live = append(live, off)
		} else {
			j := rnd.Intn(len(live))
			h.Free(live[j])
			live = append(live[:j], live[j+1:]...)
		}
		if options.check {
			h.Validate()
		}
	}
	_, _, alloc, _ := h.Info()
	for _, off := range live {
		h.Free(off)
	}
	log.Infof("heaptrace: workload done, %v freed back across %v blocks\n",
		humanize.Bytes(uint64(alloc)), len(live))
	return n
}
