package mcpserver

// JournalFormatContract describes the canonical journal layout for LLM
// consumers reading day files.
const JournalFormatContract = `# Daybook Journal Format

The journal is a tree of per-day Markdown files:

` + "```" + `
TARGET_DIR/
  2024/
    06-June/
      2024-06-09.md
      2024-06-10.md
    07-July/
      2024-07-01.md
` + "```" + `

## Day files

- One file per calendar day, named ` + "`" + `YYYY-MM-DD.md` + "`" + `.
- Month directories carry an ` + "`" + `MM-` + "`" + ` prefix so they sort chronologically.
- A file is a sequence of sections separated by blank lines. Each
  section starts with a fixed ` + "`" + `##` + "`" + ` heading that identifies its source:

| Heading | Content |
|---|---|
| ## News Headlines | Bullet list of ` + "`" + `[title](link)` + "`" + ` items |
| ## Weather Forecast | Markdown table, imperial units |
| ## Box Office | Markdown table of rank, title, revenue |
| ## Music Charts | Markdown table of rank, title, artist |
| ## Netflix Viewing History | Bullet list of titles |
| ## Apple Music Play History | Bullet list of tracks |
| ## Movies Attended | Bullet list of movie, theater, address |
| ## Yelp Reviews | Markdown table of business, rating, comment |
| ## Events | Lines of ` + "`" + `date: name, location` + "`" + ` |

## Rules

1. **Sections are append-only.** A heading appears in a file at most
   once; its content is never rewritten after the first write. Data
   reflects the collection run that produced it, not the current state
   of the upstream source.
2. **A day may have any subset of sections** depending on which sources
   had data for that date.
3. The ` + "`" + `_Generated on YYYY-MM-DD_` + "`" + ` line inside a section is the date
   the section was collected, which may differ from the file's day.
4. **Encoding** is UTF-8.
5. Hand-edited files may add extra headings or YAML frontmatter; treat
   unknown sections as free-form Markdown.
`
