package mcpserver

// NoteFormatContract describes how notes land on the calendar and what
// open_day_note writes.
const NoteFormatContract = `# foliocal Day Note Format

A note appears on the calendar when its YAML frontmatter carries a date in
the configured date field (default ` + "`date`" + `).

## Structure

` + "```" + `markdown
---
date: 2024-03-15          # REQUIRED for the calendar; YYYY-MM-DD preferred
title: Sprint review      # OPTIONAL; defaults to the file name without .md
icon: "🚀"                # OPTIONAL; shown before the title
tags:                     # OPTIONAL; list or single value, used by tag filters
  - work
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. The ` + "`---`" + ` fences must be the first thing in the file.
2. Dates are read at day granularity. Times and zones are ignored for placement.
3. A note is shown only when its path starts with the calendar's folder.
4. Display properties (default: ` + "`tags`" + `) are copied onto events when present and
   non-empty. Nested maps are ignored.
5. Day notes created by ` + "`open_day_note`" + ` are named ` + "`YYYY-MM-DD.md`" + ` inside the folder and
   contain only the date field.
6. File paths end with ` + "`.md`" + ` and use forward slashes.
`
