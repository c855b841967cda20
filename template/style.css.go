// Package template renders the library, reader and publisher pages as templ
// components. Edit the .templ files and regenerate with `templ generate`.
package template

const StyleCSS = `
:root, body[data-theme="light"] {
  --color-bg: #ffffff;
  --color-bg-secondary: #f5f5f5;
  --color-text: #333333;
  --color-text-secondary: #666666;
  --color-border: #e0e0e0;
  --color-primary: #2c3e50;
}

body[data-theme="dark"] {
  --color-bg: #1a1a1a;
  --color-bg-secondary: #262626;
  --color-text: #e0e0e0;
  --color-text-secondary: #a0a0a0;
  --color-border: #3a3a3a;
  --color-primary: #8ab4f8;
}

body[data-theme="sepia"] {
  --color-bg: #f4ecd8;
  --color-bg-secondary: #eadfc4;
  --color-text: #5b4636;
  --color-text-secondary: #7a6552;
  --color-border: #d8c8a8;
  --color-primary: #8b5a2b;
}

body {
  margin: 0;
  background-color: var(--color-bg);
  color: var(--color-text);
  font-family: system-ui, sans-serif;
  line-height: 1.6;
}

a {
  color: var(--color-primary);
  text-decoration: none;
}

nav {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 0 20px;
  height: 64px;
  border-bottom: 1px solid var(--color-border);
}

main {
  max-width: 960px;
  margin: 0 auto;
  padding: 32px 20px 48px;
}

.status {
  text-align: center;
  padding: 48px;
}

.novel-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(200px, 1fr));
  gap: 24px;
}

.novel-card {
  display: flex;
  flex-direction: column;
  background-color: var(--color-bg-secondary);
  border: 1px solid var(--color-border);
  border-radius: 8px;
  overflow: hidden;
}

.novel-card .cover {
  aspect-ratio: 2 / 3;
  display: flex;
  align-items: center;
  justify-content: center;
  color: var(--color-text-secondary);
}

.novel-card img {
  width: 100%;
  height: 100%;
  object-fit: cover;
}

.tag {
  font-size: 0.75em;
  padding: 2px 8px;
  margin-right: 4px;
  border-radius: 999px;
  border: 1px solid var(--color-border);
}

.controls, .settings {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 16px;
  margin-bottom: 32px;
  background-color: var(--color-bg-secondary);
  border: 1px solid var(--color-border);
  border-radius: 8px;
}

.reader-content {
  line-height: 2;
  text-align: justify;
  overflow-wrap: break-word;
  font-family: Georgia, serif;
}

.reader-content p {
  text-indent: 2em;
  margin-bottom: 1.5em;
}

.reader-content h1, .reader-content h2, .reader-content h3 {
  margin-top: 2em;
  margin-bottom: 1em;
  font-weight: bold;
  text-align: center;
}

.reader-content img {
  max-width: 80%;
  height: auto;
  display: block;
  margin: 1em auto;
}

.chapter-nav {
  display: flex;
  justify-content: space-between;
  margin-top: 48px;
  padding-top: 32px;
  border-top: 1px solid var(--color-border);
}
`
