// Copyright (c) 2026 aravinthdhanam@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.29
//

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	m "github.com/aravinthdhanam/flowfuse"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Load the recorded flow/attitude log
	rows, err := loadLog(args.logFn)
	if err != nil {
		return fmt.Errorf("failed to load input log: %w", err)
	}

	if m.DBG_ >= 1 {
		m.PrintA("--- log data (%s): %d cycles ---\n", filepath.Base(args.logFn), len(rows))
	}

	// Prepare output file
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer closeOutput(out)

	// Print header
	if !args.noHeader {
		printTraceHeader(out, os.Args[0], args.logFn)
	}

	// Process cycles
	return processCycles(args, rows, out)
}

// One recorded estimator cycle
type logRow struct {
	timeUS   uint64
	att      m.Attitude
	agl      float64
	aglValid bool
	sample   m.FlowSample
}

// Column layout of the input log
var logColumns = []string{
	"time_us", "roll", "pitch", "yaw",
	"rollspeed", "pitchspeed", "yawspeed",
	"agl", "agl_valid", "quality",
	"flow_x", "flow_y", "gyro_x", "gyro_y", "dt_us",
}

// Load the CSV log file
func loadLog(fn string) ([]logRow, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.TrimLeadingSpace = true
	recs, err := rd.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) < 2 {
		return nil, fmt.Errorf("log has no data rows")
	}

	// Map the header row onto the expected columns
	header := recs[0]
	col := map[string]int{}
	for _, name := range logColumns {
		i := slices.Index(header, name)
		if i < 0 {
			return nil, fmt.Errorf("missing column %q in log header", name)
		}
		col[name] = i
	}

	rows := make([]logRow, 0, len(recs)-1)
	for n, rec := range recs[1:] {
		row, err := parseRow(rec, col)
		if err != nil {
			return nil, fmt.Errorf("log row %d: %w", n+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Parse one log record
func parseRow(rec []string, col map[string]int) (row logRow, err error) {
	fld := func(name string) (float64, error) {
		return strconv.ParseFloat(rec[col[name]], 64)
	}

	t, err := strconv.ParseUint(rec[col["time_us"]], 10, 64)
	if err != nil {
		return row, fmt.Errorf("time_us: %w", err)
	}
	row.timeUS = t

	vals := map[string]float64{}
	for _, name := range []string{
		"roll", "pitch", "yaw",
		"rollspeed", "pitchspeed", "yawspeed",
		"agl", "quality", "flow_x", "flow_y", "gyro_x", "gyro_y"} {
		v, err := fld(name)
		if err != nil {
			return row, fmt.Errorf("%s: %w", name, err)
		}
		vals[name] = v
	}

	aglValid, err := strconv.ParseBool(rec[col["agl_valid"]])
	if err != nil {
		return row, fmt.Errorf("agl_valid: %w", err)
	}

	dt, err := strconv.ParseUint(rec[col["dt_us"]], 10, 32)
	if err != nil {
		return row, fmt.Errorf("dt_us: %w", err)
	}

	row.att = m.Attitude{
		Roll:  vals["roll"],
		Pitch: vals["pitch"],
		R:     m.DCMFromEuler(vals["roll"], vals["pitch"], vals["yaw"]),
		Rates: m.Vec3{X: vals["rollspeed"], Y: vals["pitchspeed"], Z: vals["yawspeed"]},
	}
	row.agl = vals["agl"]
	row.aglValid = aglValid
	row.sample = m.FlowSample{
		Quality: vals["quality"],
		FlowX:   vals["flow_x"],
		FlowY:   vals["flow_y"],
		GyroX:   vals["gyro_x"],
		GyroY:   vals["gyro_y"],
		Dt:      uint32(dt),
	}
	return row, nil
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	outf, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return outf, nil
}

// Close output file
func closeOutput(out io.WriteCloser) {
	if out != nil {
		out.Close()
	}
}

// Process estimator cycles
func processCycles(args cmdOpt, rows []logRow, out io.Writer) error {

	log := logrus.New()
	log.SetOutput(os.Stderr)

	opt := setFlowOpt(&args)
	fuser := m.NewFlowFuser(opt, m.LogrusDiag{Log: log}, m.NewDeltaLimiter(args.dxMax))
	st := m.NewState(args.varP)

	for _, row := range rows {
		st.T = row.timeUS

		m.PrintD(2, "\n>>> t=%d us (roll %6.2f deg, pitch %6.2f deg)\n",
			st.T, m.ToDeg(row.att.Roll), m.ToDeg(row.att.Pitch))

		if !fuser.Initialized() {
			fuser.Init(st, &row.att, row.agl, row.aglValid, &row.sample)
		} else {
			fuser.Correct(st, &row.att, row.agl, row.aglValid, &row.sample)
		}
		fuser.CheckTimeout(st)

		printTrace(out, st, fuser)
	}

	return nil
}

// Print trace file header
func printTraceHeader(out io.Writer, cmd, logFn string) {
	fmt.Fprintf(out, "%% program   : %s\n", filepath.Base(cmd))
	fmt.Fprintf(out, "%% inp file  : %s\n", logFn)
	fmt.Fprintf(out, "%%    time(us)      vx(m/s)      vy(m/s)      innov_x      innov_y        var_x        var_y  fault  init\n")
}

// Output one trace line
func printTrace(out io.Writer, st *m.State, fuser *m.FlowFuser) {
	innov := fuser.Innovation()
	innovVar := fuser.InnovationVariance()
	init := 0
	if fuser.Initialized() {
		init = 1
	}
	fmt.Fprintf(out, "%13d %12.4f %12.4f %12.4f %12.4f %12.6f %12.6f %6s %5d\n",
		st.T, st.X.AtVec(m.XVelX), st.X.AtVec(m.XVelY),
		innov[m.YVelX], innov[m.YVelY], innovVar[m.YVelX], innovVar[m.YVelY],
		fuser.Fault(), init)
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	logFn      string
	outFn      string
	noHeader   bool
	minQuality float64
	noGyroComp bool
	hpCutoff   float64
	stdV       float64
	stdD       float64
	stdR       float64
	varP       float64
	dxMax      float64
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] flow_log.csv

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	fOpt := m.NewFlowOpt()
	flag.StringVar(&a.outFn, "o", "", "Output trace file path. If not specified, output to stdout.")
	flag.BoolVar(&a.noHeader, "nh", false, "Do not output header section of the trace file.")
	flag.Float64Var(&a.minQuality, "q", fOpt.MinQuality, "Minimum flow sample quality accepted by the validity gate.")
	flag.BoolVar(&a.noGyroComp, "ngc", !fOpt.GyroComp, "Disable high-pass gyro compensation of the flow angles.")
	flag.Float64Var(&a.hpCutoff, "fc", fOpt.HPCutoff, "High-pass cutoff for gyro bias removal [Hz].")
	flag.Float64Var(&a.stdV, "stdV", fOpt.VXYStdDev, "Base velocity observation noise [m/s].")
	flag.Float64Var(&a.stdD, "stdD", fOpt.VXYDStdDev, "Observation noise growth per meter of ground distance [m/s/m].")
	flag.Float64Var(&a.stdR, "stdR", fOpt.VXYRStdDev, "Observation noise growth per rad/s of body rotation [m/s/(rad/s)].")
	flag.Float64Var(&a.varP, "vp", 1.0, "Initial diagonal value of the estimation error covariance.")
	flag.Float64Var(&a.dxMax, "dx", 1.0, "Clamp applied to each element of a state correction.")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(more detailed), 4(most detailed)")
	flag.Parse()
	if flag.NArg() != 1 {
		return a, fmt.Errorf("too less or many arguments")
	}
	a.logFn = flag.Arg(0)
	m.DBG_ = dbg
	return
}

func setFlowOpt(args *cmdOpt) *m.FlowOpt {
	opt := m.NewFlowOpt()
	opt.MinQuality = args.minQuality
	opt.GyroComp = !args.noGyroComp
	opt.HPCutoff = args.hpCutoff
	opt.VXYStdDev = args.stdV
	opt.VXYDStdDev = args.stdD
	opt.VXYRStdDev = args.stdR
	return opt
}
