package controller

import "github.com/elliotchance/orderedmap/v2"

// ledger tracks which action names brains requested during the current tick.
// Entries survive one cycle after their last request so a name fed on tick T
// is still known (as unfed) on tick T+1.
type ledger struct {
	fed *orderedmap.OrderedMap[string, bool]
}

func (l *ledger) init() {
	if l.fed == nil {
		l.fed = orderedmap.NewOrderedMap[string, bool]()
	}
}

// feed marks name as requested this tick.
func (l *ledger) feed(name string) {
	l.init()
	l.fed.Set(name, true)
}

// fedThisTick reports whether name was requested since the last cycle.
func (l *ledger) fedThisTick(name string) bool {
	if l.fed == nil {
		return false
	}
	fed, _ := l.fed.Get(name)
	return fed
}

// cycle drops names that were not requested this tick and rearms the rest.
func (l *ledger) cycle() {
	if l.fed == nil {
		return
	}
	for el := l.fed.Front(); el != nil; {
		next := el.Next()
		if el.Value {
			l.fed.Set(el.Key, false)
		} else {
			l.fed.Delete(el.Key)
		}
		el = next
	}
}

// names returns the tracked names in first-request order.
func (l *ledger) names() []string {
	if l.fed == nil {
		return nil
	}
	return l.fed.Keys()
}
