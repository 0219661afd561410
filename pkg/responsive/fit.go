package responsive

import "github.com/sirupsen/logrus"

// FitResult summarises one fit cycle.
type FitResult struct {
	// Collapsed lists the columns visited by the collapse loop, in order.
	Collapsed []int
	// Expanded lists the columns the expand pass restored.
	Expanded       []int
	TableWidth     float64
	ContainerWidth float64
	Fits           bool
}

// Resize runs one fit cycle: columns collapse in traversal order while the
// table is wider than its container, then collapsed columns whose cached
// minimum width fits again are expanded, walking the inverse order. It is
// meant to be called once per settled container resize; each call
// supersedes the previous one. force refreshes the minimum widths even
// when the table already fits. A call made from an event listener during
// a cycle returns immediately with an empty result.
func (t *Table) Resize(force bool) FitResult {
	if t.resizing {
		return FitResult{}
	}
	t.resizing = true
	defer func() { t.resizing = false }()

	var res FitResult
	tw, cw := t.m.TableWidth(t.node), t.m.ContainerWidth(t.node)
	if force || tw > cw {
		t.GatherMinWidths()
	}

	cur := t.traversal.Initial(false)
	for steps := 0; tw > cw && cur != NoColumn && steps < len(t.columns); steps++ {
		if t.mutator.Collapse(cur) {
			t.log.WithFields(logrus.Fields{
				"column":          cur,
				"table_width":     tw,
				"container_width": cw,
			}).Debug("Collapsed column.")
		}
		res.Collapsed = append(res.Collapsed, cur)
		t.emit(Event{Kind: EventColumnCollapsed, Column: cur, Auto: true})
		cur = t.traversal.Next(cur, false)
		tw, cw = t.m.TableWidth(t.node), t.m.ContainerWidth(t.node)
	}

	if t.minGathered {
		t.GatherCollapsedWidths()
		for cur := t.traversal.Initial(true); cur != NoColumn; cur = t.traversal.Next(cur, true) {
			if !t.columns[cur].collapsed {
				continue
			}
			predicted := t.PredictedWidth(cur)
			if predicted >= cw {
				continue
			}
			t.mutator.Expand(cur, false)
			t.log.WithFields(logrus.Fields{
				"column":          cur,
				"predicted_width": predicted,
				"container_width": cw,
			}).Debug("Expanded column.")
			res.Expanded = append(res.Expanded, cur)
			t.emit(Event{Kind: EventColumnExpanded, Column: cur, Auto: true})
		}
		if len(res.Expanded) > 0 {
			tw, cw = t.m.TableWidth(t.node), t.m.ContainerWidth(t.node)
		}
	}

	res.TableWidth, res.ContainerWidth = tw, cw
	res.Fits = tw <= cw
	return res
}
