// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package contestxml

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/hbue-acm/ptaxml/lib/contest"
)

// Info is the contest metadata section.
type Info struct {
	Title      string
	ShortTitle string
	ContestID  string
	// StartTime is Unix seconds, already formatted.
	StartTime string
	// Length is the contest duration as H:MM:SS.
	Length                 string
	Penalty                int
	Started                bool
	ScoreboardFreezeLength string
}

// Region is the single region every team belongs to.
type Region struct {
	ExternalID string
	Name       string
}

// Problem is one <problem> entry.
type Problem struct {
	ID     string
	Letter string
	Name   string
}

// Team is one <team> entry.
type Team struct {
	ID         string
	ExternalID string
	Region     string
	Name       string
	University string
}

// Run is one judged submission.
type Run struct {
	ID       int
	Language string
	Problem  string
	Team     string
	// Time is whole seconds since contest start.
	Time int64
	// Timestamp is absolute Unix seconds, already formatted.
	Timestamp string
	Solved    bool
	Penalty   bool
	Result    string
}

// Finalized is the closing section that tells the resolver the
// standings are final.
type Finalized struct {
	LastGold   int
	LastSilver int
	LastBronze int
	Time       string
	Timestamp  string
}

// Document accumulates contest sections under a <contest> root.
type Document struct {
	tree *etree.Document
	root *etree.Element
}

// New returns an empty document with the XML declaration and an empty
// <contest> root.
func New() *Document {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return &Document{tree: tree, root: tree.CreateElement("contest")}
}

// AddInfo appends the <info> section.
func (d *Document) AddInfo(info Info) {
	node := d.root.CreateElement("info")
	leaf(node, "title", info.Title)
	leaf(node, "short-title", info.ShortTitle)
	leaf(node, "contest-id", info.ContestID)
	leaf(node, "starttime", info.StartTime)
	leaf(node, "length", info.Length)
	leaf(node, "penalty", strconv.Itoa(info.Penalty))
	leaf(node, "started", titleBool(info.Started))
	leaf(node, "scoreboard-freeze-length", info.ScoreboardFreezeLength)
}

// AddRegion appends a <region>.
func (d *Document) AddRegion(region Region) {
	node := d.root.CreateElement("region")
	leaf(node, "external-id", region.ExternalID)
	leaf(node, "name", region.Name)
}

// AddJudgement appends a <judgement> definition.
func (d *Document) AddJudgement(judgement contest.Judgement) {
	node := d.root.CreateElement("judgement")
	leaf(node, "id", judgement.ID)
	leaf(node, "acronym", judgement.Acronym)
	leaf(node, "name", judgement.Name)
	leaf(node, "solved", strconv.FormatBool(judgement.Solved))
	leaf(node, "penalty", strconv.FormatBool(judgement.Penalty))
}

// AddLanguage appends a <language> definition.
func (d *Document) AddLanguage(language contest.Language) {
	node := d.root.CreateElement("language")
	leaf(node, "id", language.ID)
	leaf(node, "name", language.Name)
}

// AddProblem appends a <problem>.
func (d *Document) AddProblem(problem Problem) {
	node := d.root.CreateElement("problem")
	leaf(node, "id", problem.ID)
	leaf(node, "letter", problem.Letter)
	leaf(node, "name", problem.Name)
}

// AddTeam appends a <team>.
func (d *Document) AddTeam(team Team) {
	node := d.root.CreateElement("team")
	leaf(node, "id", team.ID)
	leaf(node, "external-id", team.ExternalID)
	leaf(node, "region", team.Region)
	leaf(node, "name", team.Name)
	leaf(node, "university", team.University)
}

// AddRun appends a judged <run>. Status is always "done".
func (d *Document) AddRun(run Run) {
	node := d.root.CreateElement("run")
	leaf(node, "id", strconv.Itoa(run.ID))
	leaf(node, "judged", titleBool(true))
	leaf(node, "language", run.Language)
	leaf(node, "problem", run.Problem)
	leaf(node, "status", "done")
	leaf(node, "team", run.Team)
	leaf(node, "time", strconv.FormatInt(run.Time, 10))
	leaf(node, "timestamp", run.Timestamp)
	leaf(node, "solved", strconv.FormatBool(run.Solved))
	leaf(node, "penalty", strconv.FormatBool(run.Penalty))
	leaf(node, "result", run.Result)
}

// AddFinalized appends the <finalized> section.
func (d *Document) AddFinalized(finalized Finalized) {
	node := d.root.CreateElement("finalized")
	leaf(node, "last_gold", strconv.Itoa(finalized.LastGold))
	leaf(node, "last_silver", strconv.Itoa(finalized.LastSilver))
	leaf(node, "last_bronze", strconv.Itoa(finalized.LastBronze))
	leaf(node, "time", finalized.Time)
	leaf(node, "timestamp", finalized.Timestamp)
}

// Length returns the text of info/length, or "" before AddInfo.
func (d *Document) Length() string {
	if element := d.root.FindElement("info/length"); element != nil {
		return element.Text()
	}
	return ""
}

// Count returns how many direct children of <contest> carry tag.
func (d *Document) Count(tag string) int {
	return len(d.root.SelectElements(tag))
}

func leaf(parent *etree.Element, tag, text string) {
	parent.CreateElement(tag).SetText(text)
}

func titleBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
