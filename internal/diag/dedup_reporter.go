package diag

// DedupReporter forwards each distinct (code, severity, primary range,
// message) once. Parser recovery can hit the same spot more than once;
// notes are not part of the identity.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code       Code
	sev        Severity
	start, end uint32
	msg        string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[dedupKey]struct{}{}}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	k := dedupKey{d.Code, d.Severity, d.Primary.Start.Offset, d.Primary.End.Offset, d.Message}
	if _, dup := r.seen[k]; dup {
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
