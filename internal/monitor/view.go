// internal/monitor/view.go
package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tamzrod/amp-bridge/internal/record"
)

// Column widths shared by every panel.
const (
	colKey = 20
	colVal = 14
)

type kv struct {
	key   string
	value string
	style lipgloss.Style
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	var rows []kv
	var sec record.Section
	switch m.page {
	case PageSettings:
		rows, sec = m.settingsRows(), record.SectionSettings
	case PageCalibration:
		rows, sec = m.calibrationRows(), record.SectionCalibration
	default:
		rows, sec = m.statusRows(), record.SectionStatus
	}

	if !m.set.Valid.Has(sec) {
		b.WriteString(panelStyle.Render(labelStyle.Render("no " + sec.Name() + " received yet")))
	} else {
		b.WriteString(panelStyle.Render(renderRows(rows)))
	}
	b.WriteString("\n")

	if m.showPresence {
		b.WriteString(m.renderPresence(sec))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	link := okStyle.Render("LIVE")
	switch {
	case m.closed:
		link = labelStyle.Render("ENDED")
	case m.lastErr != nil:
		link = critStyle.Render("ERROR")
	case m.polls == 0:
		link = labelStyle.Render("WAITING")
	}
	if m.paused {
		link += " " + warnStyle.Render("PAUSED")
	}

	updated := "never"
	if !m.lastAt.IsZero() {
		updated = m.lastAt.Format("15:04:05.000")
	}

	return titleStyle.Render("ampwatch") + " " + valueStyle.Render(m.name) + "  " + link + "  " +
		labelStyle.Render("updated ") + valueStyle.Render(updated)
}

func (m Model) renderTabs() string {
	var tabs []string
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d %s", int(p)+1, p)
		if p == m.page {
			tabs = append(tabs, headerStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, labelStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderFooter() string {
	stats := fmt.Sprintf("polls %d  unchanged %d  errors %d", m.polls, m.unchanged, m.errors)
	line := labelStyle.Render(stats)
	if m.lastErr != nil {
		line += "\n" + critStyle.Render("last error: "+m.lastErr.Error())
	}
	return line + "\n" + helpStyle.Render("tab/1-3 page  p pause  k keys  q quit")
}

func (m Model) renderPresence(sec record.Section) string {
	p, ok := m.found[sec]
	if !ok {
		return labelStyle.Render("no key report for " + sec.Name())
	}
	missing := p.Missing()
	if len(missing) == 0 {
		return okStyle.Render(fmt.Sprintf("all %d keys present", p.Count()))
	}
	return warnStyle.Render(fmt.Sprintf("%d keys present, missing: %s", p.Count(), strings.Join(missing, ", ")))
}

// styledPad pads a styled string to the given visual width using spaces.
func styledPad(styled string, width int) string {
	visW := lipgloss.Width(styled)
	if visW >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-visW)
}

func renderRows(rows []kv) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, styledPad(labelStyle.Render(r.key), colKey)+styledPad(r.style.Render(r.value), colVal))
	}
	return strings.Join(lines, "\n")
}

// ---- pages ----

func num(v float32) string { return fmt.Sprintf("%.2f", v) }

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) statusRows() []kv {
	s := m.set.Status
	lim := m.set.Settings
	st := record.StateOf(s)

	alert := s.AlertReason
	if alert == "" {
		alert = "-"
	}

	return []kv{
		{"Forward", num(s.Fwd), valueStyle},
		{"Reflected", num(s.Ref), valueStyle},
		{"TRX forward", num(s.TrxFwd), valueStyle},
		{"SWR", num(s.SWR), swrColor(s.SWR, lim.MaxSWR)},
		{"Current", num(s.Current), valueStyle},
		{"Voltage", num(s.Voltage), valueStyle},
		{"Water temp", num(s.WaterTemp), tempColor(s.WaterTemp, lim.MaxWaterTemp)},
		{"Plate temp", num(s.PlateTemp), tempColor(s.PlateTemp, lim.MaxPlateTemp)},
		{"Band", st.Band, valueStyle},
		{"PTT", onOff(st.PTT), flagStyle(st.PTT)},
		{"Transmit", onOff(st.State), flagStyle(st.State)},
		{"Alarm", onOff(st.Alarm), alarmStyle(st.Alarm)},
		{"Alert", alert, alarmStyle(st.Alarm)},
		{"Pump PWM", fmt.Sprintf("%d (auto %s)", st.PWMPump, onOff(st.AutoPWMPump)), valueStyle},
		{"Cooler PWM", fmt.Sprintf("%d (auto %s)", st.PWMCooler, onOff(st.AutoPWMFan)), valueStyle},
		{"Protection", onOff(s.ProtectionEnabled), valueStyle},
	}
}

func alarmStyle(on bool) lipgloss.Style {
	if on {
		return critStyle
	}
	return okStyle
}

func (m Model) settingsRows() []kv {
	s := m.set.Settings
	return []kv{
		{"Max SWR", num(s.MaxSWR), valueStyle},
		{"Max current", num(s.MaxCurrent), valueStyle},
		{"Max voltage", num(s.MaxVoltage), valueStyle},
		{"Max water temp", num(s.MaxWaterTemp), valueStyle},
		{"Max plate temp", num(s.MaxPlateTemp), valueStyle},
		{"Pump full at", num(s.MaxPumpSpeedTemp), valueStyle},
		{"Pump min at", num(s.MinPumpSpeedTemp), valueStyle},
		{"Fan full at", num(s.MaxFanSpeedTemp), valueStyle},
		{"Fan min at", num(s.MinFanSpeedTemp), valueStyle},
		{"Max input power", fmt.Sprintf("%d", s.MaxInputPower), valueStyle},
		{"Auto band", onOff(s.AutoBand), valueStyle},
		{"Default band", s.DefaultBand, valueStyle},
	}
}

func (m Model) calibrationRows() []kv {
	c := m.set.Calibration
	return []kv{
		{"FWD low/mid/high", num(c.FwdLow) + " " + num(c.FwdMid) + " " + num(c.FwdHigh), valueStyle},
		{"REF low/mid/high", num(c.RefLow) + " " + num(c.RefMid) + " " + num(c.RefHigh), valueStyle},
		{"TRX low/mid/high", num(c.TrxFwdLow) + " " + num(c.TrxFwdMid) + " " + num(c.TrxFwdHigh), valueStyle},
		{"Voltage coef", num(c.VoltageCoef), valueStyle},
		{"Current coef", num(c.CurrentCoef), valueStyle},
		{"Reserve coef", num(c.ReserveCoef), valueStyle},
		{"Current zero", num(c.CurrentZero), valueStyle},
		{"Current sens", num(c.CurrentSens), valueStyle},
	}
}
