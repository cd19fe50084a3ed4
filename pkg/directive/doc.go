// Package directive resolves the card template grammar against an enriched
// record. Resolution runs in fixed stages:
//
//  1. {{field}} substitution for every record field
//  2. {{#if key}}...{{/if}} conditionals
//  3. {{#each key}}...{{/each}} loops
//  4. style tokens: {{theme}}, {{fontStyle}}, {{animationStyle}},
//     {{backgroundImageStyle}}
//  5. palette tokens: {{theme.color.X}}, {{theme.gradient.X}},
//     {{theme.shadow.X}}
//  6. injection of the theme stylesheet
//
// Blocks do not nest: each stage scans once and an opener pairs with the
// first closer after it. Tokens with no data, including markers stranded by
// nested blocks, stay in the output so template mistakes remain visible.
// Processing a rendered well-formed document returns it unchanged.
package directive
