package contam

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lintang-b-s/osm2prj/pkg/util"
)

const (
	PRJ_HEADER  = "ContamW 3.1  0"
	PRJ_TRAILER = "* end project file."

	prjDateLayout = "Jan02"
	prjTimeLayout = "15:04:05"
)

type prjWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (p *prjWriter) printf(format string, a ...interface{}) {
	if p.err != nil {
		return
	}
	n, err := fmt.Fprintf(p.w, format, a...)
	p.n += int64(n)
	p.err = err
}

func (p *prjWriter) line(format string, a ...interface{}) {
	p.printf(format+"\n", a...)
}

func (p *prjWriter) sectionEnd() {
	p.line("%s", PRJ_SECTION_END)
}

// WriteTo. writes the project file. the output only depends on the model content.
func (m *IndexModel) WriteTo(w io.Writer) (int64, error) {
	p := &prjWriter{w: bufio.NewWriter(w)}

	p.line("%s", PRJ_HEADER)
	p.line("%s", prjName(m.Title))
	p.line("! rows cols ud uf    T   uT     N     wH  u  Ao    a")
	p.line("    58   66  0  0 %s 2    0.00 10.00 0 0.600 0.280", util.FormatFloat(m.Weather.Temperature))

	m.writeRunControl(p)
	m.writeWeather(p)
	m.writeLevels(p)
	m.writeElements(p)
	m.writeZones(p)
	m.writePaths(p)
	m.writeAHS(p)

	p.line("%s", PRJ_TRAILER)
	if p.err == nil {
		p.err = p.w.Flush()
	}
	return p.n, p.err
}

// ToString. the project file as text, always newline terminated.
func (m *IndexModel) ToString() string {
	var sb strings.Builder
	// strings.Builder never fails
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

func (m *IndexModel) writeRunControl(p *prjWriter) {
	rc := m.RunControl
	p.line("! sim_af afcalc afmaxi afrcnvg afacnvg afrelax uac Pbldg uPb")
	p.line("%d 1 30 1e-05 1e-06 0.75 0 50 0", rc.SimAF)
	p.line("!    date_st time_st  date_0 time_0   date_1 time_1    t_step  t_list  t_scrn")
	start, end := "Jan01", "Jan01"
	startTime, endTime := "00:00:00", "24:00:00"
	if rc.Transient() {
		start, startTime = rc.StartDate.Format(prjDateLayout), rc.StartDate.Format(prjTimeLayout)
		end, endTime = rc.EndDate.Format(prjDateLayout), rc.EndDate.Format(prjTimeLayout)
		if endTime == "00:00:00" {
			// contam closes a day at 24:00:00 of the previous date
			end, endTime = rc.EndDate.AddDate(0, 0, -1).Format(prjDateLayout), "24:00:00"
		}
	}
	step := formatClock(int(rc.TimeStep.Seconds()))
	p.line("%s %s %s %s %s %s %s %s %s", start, startTime, start, startTime, end, endTime, step, "01:00:00", "01:00:00")
	p.sectionEnd()
}

func (m *IndexModel) writeWeather(p *prjWriter) {
	wth := m.Weather
	p.line("! Ta       Pb      Ws    Wd    rh  day u..")
	p.line("%s %s %s %s 0.0 1 2 3 1 1 0", util.FormatFloat(wth.Temperature), util.FormatFloat(wth.Pressure),
		util.FormatFloat(wth.WindSpeed), util.FormatFloat(wth.WindDir))
	p.sectionEnd()
}

func (m *IndexModel) writeLevels(p *prjWriter) {
	p.line("%d ! levels plus icon data:", len(m.Levels))
	p.line("! #  refHt   delHt  ni  u  name")
	for _, l := range m.Levels {
		p.line("%3d %s %s 0 0 0 %s", l.Nr, util.FormatFloat(util.RoundFloat(l.RefHt, 3)),
			util.FormatFloat(util.RoundFloat(l.DelHt, 3)), prjName(l.Name))
	}
	p.sectionEnd()
}

func (m *IndexModel) writeElements(p *prjWriter) {
	p.line("%d ! flow elements:", len(m.Elements))
	for _, e := range m.Elements {
		p.line("%d 23 plr_leak2 %s", e.Nr, prjName(e.Name))
		p.line("%s", e.Description)
		p.line(" %s %s %s %s %s 0.6 1 0 0 0 ! lam turb expt dP Flow",
			formatCoefficient(e.LaminarCoefficient()), formatCoefficient(e.TurbulentCoefficient()),
			util.FormatFloat(e.Exponent), util.FormatFloat(e.DeltaP), util.FormatFloat(e.FlowRate))
	}
	p.sectionEnd()
}

func (m *IndexModel) writeZones(p *prjWriter) {
	p.line("%d ! zones:", len(m.Zones))
	p.line("! Z#  f  s#  c#  k#  l#  relHt    Vol  T0  P0  name")
	for _, z := range m.Zones {
		p.line("%3d %d 0 0 0 %d 0 %s %s %s %s", z.Nr, z.Flags, z.LevelNr,
			util.FormatFloat(util.RoundFloat(z.Volume, 3)), util.FormatFloat(z.Temperature),
			util.FormatFloat(z.Pressure), prjName(z.Name))
	}
	p.sectionEnd()
}

func (m *IndexModel) writePaths(p *prjWriter) {
	p.line("%d ! flow paths:", len(m.Paths))
	p.line("! P#    f  n#  m#  e#  f#  w#  a#  s#  c#  l#    X       Y      relHt    mult    Fahs  name")
	for _, path := range m.Paths {
		p.line("%3d %d %d %d %d 0 0 %d 0 0 %d 0 0 %s %s %s %s", path.Nr, path.Flags, path.From, path.To,
			path.ElementNr, path.AHSNr, path.LevelNr, util.FormatFloat(util.RoundFloat(path.Height, 3)),
			util.FormatFloat(util.RoundFloat(path.Multiplier, 4)), formatCoefficient(path.Flow), prjName(path.Name))
	}
	p.sectionEnd()
}

func (m *IndexModel) writeAHS(p *prjWriter) {
	p.line("%d ! simple AHS:", len(m.AHSs))
	p.line("! # zr# zs# pr# ps# px# name")
	for _, a := range m.AHSs {
		p.line("%d %d %d %d %d %d %s", a.Nr, a.ReturnZone, a.SupplyZone, a.RecirculationPath,
			a.OutdoorAirPath, a.ExhaustPath, prjName(a.Name))
		p.line(" %s ! outdoor air fraction", util.FormatFloat(a.OutdoorAirFraction))
		p.line(" %d%s ! supply paths", len(a.SupplyPaths), joinInts(a.SupplyPaths))
		p.line(" %d%s ! return paths", len(a.ReturnPaths), joinInts(a.ReturnPaths))
	}
	p.sectionEnd()
}

// prjName. contam names are single tokens.
func prjName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return "-"
	}
	return name
}

func formatCoefficient(v float64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%.6e", v)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

func joinInts(nums []int) string {
	var sb strings.Builder
	for _, n := range nums {
		fmt.Fprintf(&sb, " %d", n)
	}
	return sb.String()
}
