package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"hirelens/resume-parser/internal/config"
	"hirelens/resume-parser/internal/models"
	"hirelens/resume-parser/internal/services"
)

// Offline parser: runs the normalize/extract/score pipeline over a local
// resume file without the API server or the database.
//
//	go run scripts/parse_resume.go -file resume.pdf [-job job_description.txt]
func main() {
	filePath := flag.String("file", "", "path to a resume file (pdf, docx or txt)")
	jobPath := flag.String("job", "", "optional path to a job description text file")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println("🚀 Starting offline resume parse...")

	cfg := config.Load()

	format, ok := models.FormatFromFilename(*filePath)
	if !ok {
		log.Fatalf("❌ Unsupported file type: %s", *filePath)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read resume file: %v", err)
	}

	var jobDescription string
	if *jobPath != "" {
		jobData, err := os.ReadFile(*jobPath)
		if err != nil {
			log.Fatalf("❌ Failed to read job description file: %v", err)
		}
		jobDescription = string(jobData)
	}

	lexicon := services.DefaultSkillsLexicon()
	if cfg.Parser.SkillsLexiconPath != "" {
		lexicon, err = services.LoadSkillsLexicon(cfg.Parser.SkillsLexiconPath)
		if err != nil {
			log.Fatalf("❌ Failed to load skills lexicon: %v", err)
		}
	}

	var nameModel services.NameModel
	if cfg.Parser.EnableNER {
		nameModel = services.NewProseNameModel()
	}

	evaluator := services.NewEvaluatorService(
		nil, nil, nil, nil,
		services.NewNormalizerService(),
		services.NewExtractorService(lexicon, nameModel),
		services.NewMatcherService(),
	)

	log.Printf("📄 Parsing %s (%s)...\n", *filePath, format)
	result, err := evaluator.Parse(data, format, jobDescription)
	if err != nil {
		log.Fatalf("❌ Failed to parse resume: %v", err)
	}

	output := models.ResumeData{
		Name:       result.Record.Name,
		Email:      result.Record.Email,
		Phone:      result.Record.Phone,
		Skills:     result.Record.SkillsText(),
		Education:  result.Record.EducationText(),
		Experience: result.Record.ExperienceText(),
		MatchScore: result.MatchScore,
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode result: %v", err)
	}

	fmt.Println(string(encoded))
	log.Println("✅ Parse completed")
}
