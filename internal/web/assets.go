package web

// sectionStyles maps a style section name to its inline CSS block.
// Sections are requested by the templates through [RenderContext.Styles].
var sectionStyles = map[string]string{
	"layout": `
		body { margin: 0; font-family: system-ui, sans-serif; color: #1d1d1f; background: #fafafa; }
		.page-header { padding: 2rem 1.5rem 1rem; }
		.page-header h1 { margin: 0 0 .5rem; font-size: 1.8rem; }
		.page-header .excerpt { margin: 0 0 .25rem; color: #555; max-width: 44rem; }
		.page-header .count { margin: 0; color: #888; font-size: .9rem; }
		.profile { display: flex; align-items: center; gap: 1rem; }
		.profile img { width: 72px; height: 72px; border-radius: 50%; object-fit: cover; }`,

	"artwork-grid": `
		.artwork-grid { list-style: none; display: grid; gap: 1rem; padding: 0 1.5rem;
			grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); }
		.artwork-card img { width: 100%; display: block; border-radius: 4px; }
		.artwork-meta { display: flex; flex-direction: column; padding: .4rem 0 1rem; }
		.artwork-title { font-weight: 600; }
		.artwork-artist { color: #555; text-decoration: none; font-size: .9rem; }
		.artwork-resolution { color: #999; font-size: .8rem; }`,

	"pager": `
		.pager { display: flex; justify-content: center; gap: 1.5rem; padding: 1.5rem; }
		.pager a { color: #0a66c2; text-decoration: none; }
		.pager-page { color: #888; }`,
}

// sectionScripts maps a script section name to its inline JS block.
var sectionScripts = map[string]string{
	// grid-loader appends further grid pages through the artworks endpoint,
	// authenticating each call with the nonce embedded on the page body.
	"grid-loader": `
		(function () {
			var nonce = document.body.dataset.nonce;
			var grid = document.querySelector(".artwork-grid");
			if (!nonce || !grid) return;
			window.pictufyLoadMore = function (page, filters) {
				return fetch("/api/v1/artworks", {
					method: "POST",
					headers: { "Content-Type": "application/json" },
					body: JSON.stringify({ nonce: nonce, page: page, per_page: 12, filters: filters || {} })
				}).then(function (response) { return response.json(); });
			};
		})();`,
}
