// Package assets holds the literal configuration payloads the initializer
// writes into the generated project: the PostCSS plugin config, the Tailwind
// stylesheet entry, the Prettier config and ignore list, the ESLint flat
// config and the pre-commit hook. The payloads are fixed text - they are
// emitted verbatim and never read back by nginit.
package assets

import "fmt"

// PostCSSConfig enables the Tailwind PostCSS plugin for the Angular build.
// Written to .postcssrc.json in the project root, overwriting whatever the
// generator produced there.
const PostCSSConfig = `{
  "plugins": {
    "@tailwindcss/postcss": {}
  }
}
`

// StylesheetEntry replaces the generated src/styles.* entry file.
// Tailwind v4 is wired with a single import directive.
const StylesheetEntry = `@import "tailwindcss";
`

// PrettierConfig is the formatter configuration, written to .prettierrc.
// The override applies the Angular template parser to HTML files so Prettier
// understands Angular control-flow syntax.
const PrettierConfig = `{
  "printWidth": 100,
  "tabWidth": 2,
  "useTabs": false,
  "semi": true,
  "singleQuote": true,
  "bracketSpacing": true,
  "endOfLine": "lf",
  "overrides": [
    {
      "files": "*.html",
      "options": {
        "parser": "angular"
      }
    }
  ]
}
`

// PrettierIgnore is the formatter ignore list, written to .prettierignore.
// Build output, dependency trees and lockfiles are never formatted.
const PrettierIgnore = `dist
coverage
node_modules
.angular
package-lock.json
pnpm-lock.yaml
yarn.lock
`

// eslintConfigTemplate is the ESLint flat config, written to eslint.config.js.
// It combines the angular-eslint recommended sets, the Prettier integration
// and the two extra plugins, and pins the selector naming convention for
// components (element, kebab-case) and directives (attribute, camelCase).
// The %q verbs carry the configured selector prefix.
const eslintConfigTemplate = `// @ts-check
const eslint = require("@eslint/js");
const tseslint = require("typescript-eslint");
const angular = require("angular-eslint");
const prettierRecommended = require("eslint-plugin-prettier/recommended");
const unusedImports = require("eslint-plugin-unused-imports");
const simpleImportSort = require("eslint-plugin-simple-import-sort");

module.exports = tseslint.config(
  {
    files: ["**/*.ts"],
    extends: [
      eslint.configs.recommended,
      ...tseslint.configs.recommended,
      ...tseslint.configs.stylistic,
      ...angular.configs.tsRecommended,
      prettierRecommended,
    ],
    processor: angular.processInlineTemplates,
    plugins: {
      "unused-imports": unusedImports,
      "simple-import-sort": simpleImportSort,
    },
    rules: {
      "@angular-eslint/directive-selector": [
        "error",
        { type: "attribute", prefix: %q, style: "camelCase" },
      ],
      "@angular-eslint/component-selector": [
        "error",
        { type: "element", prefix: %q, style: "kebab-case" },
      ],
      "unused-imports/no-unused-imports": "error",
      "simple-import-sort/imports": "error",
      "simple-import-sort/exports": "error",
    },
  },
  {
    files: ["**/*.html"],
    extends: [
      ...angular.configs.templateRecommended,
      ...angular.configs.templateAccessibility,
    ],
    rules: {},
  },
);
`

// ESLintConfig renders the ESLint flat config for the given selector prefix.
func ESLintConfig(prefix string) string {
	return fmt.Sprintf(eslintConfigTemplate, prefix, prefix)
}

// HookScript renders the pre-commit hook body for the given package manager
// run prefix (e.g., "npx lint-staged"). Written to .husky/pre-commit.
func HookScript(runScript string) string {
	return runScript + "\n"
}

// LintStagedRules is the staged-file-runner mapping patched into the package
// manifest. TypeScript sources get a lint fix before formatting; templates
// and stylesheets are formatted only.
func LintStagedRules() map[string]any {
	return map[string]any{
		"*.ts":         []any{"eslint --fix", "prettier --write"},
		"*.html":       []any{"prettier --write"},
		"*.{css,scss}": []any{"prettier --write"},
	}
}

// PackageScripts is the scripts block merged into the package manifest.
// Merging is additive with last-write-wins on name collisions.
func PackageScripts(ngBin string) map[string]string {
	return map[string]string{
		"lint":         ngBin + " lint",
		"lint:fix":     ngBin + " lint --fix",
		"format":       "prettier --write .",
		"format:check": "prettier --check .",
	}
}
