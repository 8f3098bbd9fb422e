package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtmpl/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", langdetect.Text},
		{"whitespace", "  \n\t", langdetect.Text},
		{"shebang", "#!/bin/bash\necho hello", langdetect.Bash},
		{"decorator", "@Module({\n  controllers: [CatsController],\n})\nexport class AppModule {}", langdetect.TypeScript},
		{"constructor injection", "constructor(private readonly catsService: CatsService) {}", langdetect.TypeScript},
		{"interface", "interface Cat {\n  name: string;\n}", langdetect.TypeScript},
		{"es import", "import { NestFactory } from '@nestjs/core';", langdetect.TypeScript},
		{"arrow function", "const handler = (req, res) => res.send();", langdetect.JavaScript},
		{"commonjs", "const express = require('express');", langdetect.JavaScript},
		{"json", `{"name": "app", "private": true}`, langdetect.JSON},
		{"html", "<div class=\"x\">\n  <app-root></app-root>\n</div>", langdetect.HTML},
		{"npm", "$ npm i --save @nestjs/config", langdetect.Bash},
		{"nest cli", "nest new project-name", langdetect.Bash},
		{"yaml", "version: 2\nservices:\n  - api", langdetect.YAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	got := langdetect.Detect([]byte("#!/bin/sh\n@Module({})"))
	assert.Equal(t, langdetect.Bash, got)
}
