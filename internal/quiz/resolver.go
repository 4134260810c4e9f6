package quiz

// Match scans the result table in declaration order and returns the first
// record whose pattern equals answers position by position.
func (c *Content) Match(answers AnswerSet) (ResultRecord, bool) {
	for _, r := range c.Results {
		if r.Pattern == answers {
			return r, true
		}
	}
	return ResultRecord{}, false
}

// Resolve always yields a record: an exact match when one exists, otherwise
// the first record in the table.
func (c *Content) Resolve(answers AnswerSet) ResultRecord {
	if r, ok := c.Match(answers); ok {
		return r
	}
	return c.Default()
}

// Default is the fallback record returned when nothing matches.
func (c *Content) Default() ResultRecord {
	if len(c.Results) == 0 {
		return ResultRecord{}
	}
	return c.Results[0]
}

// ResolveInts resolves loosely typed input. A slice of the wrong length or
// holding a value outside the option range cannot match any pattern and falls
// through to the default record.
func (c *Content) ResolveInts(values []int) (ResultRecord, bool) {
	answers, ok := AnswersFromInts(values)
	if !ok {
		return c.Default(), false
	}
	if r, ok := c.Match(answers); ok {
		return r, true
	}
	return c.Default(), false
}

// AnswersFromInts converts values into an AnswerSet when every entry is a
// valid option index and exactly QuestionCount values are given.
func AnswersFromInts(values []int) (AnswerSet, bool) {
	var answers AnswerSet
	if len(values) != QuestionCount {
		return answers, false
	}
	for i, v := range values {
		if v < 0 || v >= OptionCount {
			return answers, false
		}
		answers[i] = Answer(v)
	}
	return answers, true
}
