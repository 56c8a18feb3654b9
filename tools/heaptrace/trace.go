package main

import "fmt"
import "strconv"
import "strings"

import "golang.org/x/exp/mmap"

// traceop one record from a malloc-lab style trace file:
//
//	a <index> <size>   allocate
//	r <index> <size>   reallocate
//	f <index>          free
//
// index names the logical pointer slot, trace headers and anything
// else that does not parse as a record is skipped.
type traceop struct {
	op    byte
	index int
	size  int64
}

func readtrace(filename string) ([]traceop, int, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, 0, err
	}

	ops, maxindex := make([]traceop, 0, 1024), 0
	for lineno, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "a", "r":
			if len(fields) != 3 {
				return nil, 0, fmt.Errorf(
					"%v:%v malformed record %q", filename, lineno+1, line)
			}
			index, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, 0, err
			} else if index < 0 {
				return nil, 0, fmt.Errorf(
					"%v:%v negative index %q", filename, lineno+1, line)
			}
			size, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, 0, err
			}
			ops = append(ops, traceop{fields[0][0], index, size})
			if index > maxindex {
				maxindex = index
			}

		case "f":
			if len(fields) != 2 {
				return nil, 0, fmt.Errorf(
					"%v:%v malformed record %q", filename, lineno+1, line)
			}
			index, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, 0, err
			} else if index < 0 {
				return nil, 0, fmt.Errorf(
					"%v:%v negative index %q", filename, lineno+1, line)
			}
			ops = append(ops, traceop{'f', index, 0})
			if index > maxindex {
				maxindex = index
			}

		default: // header line
			continue
		}
	}
	return ops, maxindex + 1, nil
}
