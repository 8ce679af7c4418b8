package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
)

const (
	executablePath         = "../../bin/courseplanner"
	resultsFile            = "benchmark_results.csv"
	MB             float32 = 1024 * 1024
)

type ModeType int

const (
	combinations ModeType = iota
	priority
	place
)

type ResultType int

const (
	found ResultType = iota
	nothing
)

var (
	modeTypes = map[ModeType]string{
		combinations: "combinations",
		priority:     "priority",
		place:        "place",
	}
	resultTypes = map[ResultType]string{
		found:   "found",
		nothing: "nothing",
	}
)

type TestMetadata struct {
	Name               string
	Codes              int
	Sections           int
	SessionsPerSection int
}

type BenchmarkResult struct {
	Mode          string  `csv:"mode"`
	Test          string  `csv:"test"`
	Codes         int     `csv:"codes"`
	Sections      int     `csv:"sections"`
	Sessions      int     `csv:"sessions_per_section"`
	Duration      int64   `csv:"duration_ms"`
	Memory        float32 `csv:"memory_mb"`
	CpuPercentage int64   `csv:"cpu_percentage"`
	Result        string  `csv:"result"`
}

func main() {
	directory, err := os.MkdirTemp("", "courseplanner-benchmark")
	if err != nil {
		log.Fatalf("cannot create temporary directory: %v", err)
	}
	defer os.RemoveAll(directory)

	tests := getTests()
	modes := []ModeType{combinations, priority, place}
	results := make([]*BenchmarkResult, 0, len(tests)*len(modes))

	for _, test := range tests {
		catalogFile := writeCatalog(directory, test)
		for _, mode := range modes {
			fmt.Printf("Benchmarking test \"%v\" with mode \"%v\"\n", test.Name, modeTypes[mode])

			duration, maxMemory, cpuPercentage, result := measure(mode, test, catalogFile)

			results = append(results, &BenchmarkResult{
				Mode:          modeTypes[mode],
				Test:          test.Name,
				Codes:         test.Codes,
				Sections:      test.Sections,
				Sessions:      test.SessionsPerSection,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        resultTypes[result],
			})
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	tests := make([]TestMetadata, 0)
	for _, codes := range []int{4, 6, 8} {
		for _, sections := range []int{2, 4, 6} {
			tests = append(tests, TestMetadata{
				Name:               fmt.Sprintf("%dx%d", codes, sections),
				Codes:              codes,
				Sections:           sections,
				SessionsPerSection: 2,
			})
		}
	}
	return tests
}

func writeCatalog(directory string, test TestMetadata) string {
	records := model.GenerateRecords(test.Codes, test.Sections, test.SessionsPerSection)
	content, err := json.Marshal(map[string]any{"courses": records})
	if err != nil {
		log.Fatalf("cannot build catalog json: %v", err)
	}

	file := filepath.Join(directory, test.Name+".json")
	if err := os.WriteFile(file, content, 0666); err != nil {
		log.Fatalf("cannot write catalog file: %v", err)
	}
	return file
}

func arguments(mode ModeType, test TestMetadata, catalogFile string) []string {
	args := []string{"-v", executablePath, "-catalog", catalogFile, "-mode", modeTypes[mode], "-out", os.DevNull}

	codes := lo.Times(test.Codes, func(i int) string { return fmt.Sprintf("c%d", i) })
	// First section of every code, then the second ones and so on
	keys := lo.Flatten(lo.Times(test.Sections, func(section int) []string {
		return lo.Map(codes, func(code string, _ int) string { return fmt.Sprintf("%v_%d", code, section+1) })
	}))

	if mode == combinations {
		return append(args, "-codes", strings.Join(codes, ","))
	}
	return append(args, "-priority", strings.Join(keys, ","), "-evict")
}

func measure(mode ModeType, test TestMetadata, catalogFile string) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", arguments(mode, test, catalogFile)...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution of \"courseplanner\" at test \"%v\" using mode \"%v\": %v\n", test.Name, modeTypes[mode], stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result = nothing
	} else {
		result = found
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(results []*BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) * 1024 / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
