package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for card documents.
//
// Question and answer text get English stemming with term vectors for
// highlighting. Subject, difficulty, and tags use the keyword analyzer
// so filters match exact values ("General Science" stays one term).
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	questionFieldMapping := bleve.NewTextFieldMapping()
	questionFieldMapping.Analyzer = en.AnalyzerName
	questionFieldMapping.Store = true
	questionFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("question", questionFieldMapping)

	answerFieldMapping := bleve.NewTextFieldMapping()
	answerFieldMapping.Analyzer = en.AnalyzerName
	answerFieldMapping.Store = true
	answerFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("answer", answerFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	subjectFieldMapping := bleve.NewTextFieldMapping()
	subjectFieldMapping.Analyzer = keyword.Name
	subjectFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("subject", subjectFieldMapping)

	difficultyFieldMapping := bleve.NewTextFieldMapping()
	difficultyFieldMapping.Analyzer = keyword.Name
	difficultyFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("difficulty", difficultyFieldMapping)

	// Keyword analyzer keeps compound tags intact (e.g., "world-war-2").
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	tagsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
