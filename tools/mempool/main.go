package main

import "flag"
import "fmt"
import "math/rand"
import "time"
import "unsafe"

import humanize "github.com/dustin/go-humanize"

import "github.com/bkwzwz/mempools/api"
import "github.com/bkwzwz/mempools/mempool"

var options struct {
	npools    int
	objsize   int
	count     int
	churn     float64
	idlelimit int
	maxage    int
	log       bool
}

func argParse() {
	flag.IntVar(&options.npools, "npools", 4,
		"number of pools to create")
	flag.IntVar(&options.objsize, "objsize", 64,
		"object size for the first pool, doubled for every next pool")
	flag.IntVar(&options.count, "count", 100000,
		"objects to allocate per pool")
	flag.Float64Var(&options.churn, "churn", 0.5,
		"fraction of objects to free before cleanup")
	flag.IntVar(&options.idlelimit, "idlelimit", 0,
		"idle limit in bytes, 0 to keep the default")
	flag.IntVar(&options.maxage, "maxage", 10,
		"cleanup age in seconds")
	flag.BoolVar(&options.log, "log", false,
		"enable component logging")
	flag.Parse()
}

func main() {
	argParse()
	if options.log {
		mempool.LogComponents("all")
	}
	reg := mempool.GetInstance()
	if options.idlelimit > 0 {
		reg.Setidlelimit(int64(options.idlelimit))
	}

	ptrs := make(map[string][]unsafe.Pointer)
	size := int64(options.objsize)
	for i := 0; i < options.npools && size <= mempool.Maxchunksize; i++ {
		label := fmt.Sprintf("pool-%v", size)
		mpool := reg.Create(label, size)
		for j := 0; j < options.count; j++ {
			ptrs[label] = append(ptrs[label], mpool.Alloc())
		}
		// free a churn fraction, in random order
		slots := ptrs[label]
		rand.Shuffle(len(slots), func(x, y int) {
			slots[x], slots[y] = slots[y], slots[x]
		})
		for j := 0; j < int(float64(len(slots))*options.churn); j++ {
			mpool.Free(slots[j])
		}
		size *= 2
	}

	reg.Clean(time.Duration(options.maxage) * time.Second)
	tellstats(reg)
	reg.Logstats()
}

func tellstats(reg *mempool.Registry) {
	gs := &api.GlobalStats{}
	dirty := reg.Globalstats(gs)
	fmt.Printf("pools   %v created, %v dirty\n", gs.Poolsalloc, dirty)
	fmt.Printf("chunks  %v total, %v full, %v partial, %v free\n",
		gs.Chunksalloc, gs.Chunksinuse, gs.Chunkspartial, gs.Chunksfree)
	fmt.Printf("items   %v total, %v inuse, %v idle\n",
		gs.Itemsalloc, gs.Itemsinuse, gs.Itemsidle)
	fmt.Printf("memory  %v allocated, %v inuse, %v idle, %v overhead\n",
		humanize.IBytes(uint64(gs.Meter.Alloc.Level)),
		humanize.IBytes(uint64(gs.Meter.Inuse.Level)),
		humanize.IBytes(uint64(gs.Meter.Idle.Level)),
		humanize.IBytes(uint64(gs.Overhead)))

	iter := reg.Iterate()
	for mpool := iter.Next(); mpool != nil; mpool = iter.Next() {
		ps := &api.PoolStats{}
		mpool.Getstats(ps)
		fmt.Printf("  %-12v objsize %6v, capacity %5v, "+
			"%7v inuse, %7v idle\n",
			ps.Label, ps.Objectsize, ps.Chunkcapacity,
			ps.Itemsinuse, ps.Itemsidle)
	}
	iter.Done()
}
