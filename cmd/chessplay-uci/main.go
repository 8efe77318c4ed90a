package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	difficulty = flag.String("difficulty", "medium", "difficulty for plain go: easy, medium or hard")
	seed       = flag.Uint64("seed", 0, "random seed for easy and medium play (0 = random)")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	var opts []engine.Option
	if *seed != 0 {
		opts = append(opts, engine.WithSeed(*seed))
	}
	eng := engine.NewEngine(opts...)

	protocol := uci.New(eng)
	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		log.Printf("%v, using %v", err, d)
	}
	protocol.SetDifficulty(d)

	if err := protocol.Run(os.Stdin, os.Stdout); err != nil {
		log.Printf("uci: %v", err)
	}
}
