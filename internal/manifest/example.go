// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package manifest

// ExampleYAML is the starter manifest written by "apiref init".
const ExampleYAML = `# Endpoint manifest. Each set is collected with its prefix; later sets
# override earlier ones for the same section, URI and method.
sets:
  - name: api
    prefix: /api
    endpoints:
      - name: GET_me
        doc: Returns the identity of the current user.
        annotations:
          - section: account
            uri: /api/v1/me
      - name: GET_info
        annotations:
          - section: listings
            doc: Returns a listing of things by fullname.
            uri_variants: ["/r/{subreddit}/api/info"]
            parameters:
              id: a comma-separated list of fullnames
      - name: GET_by_id
        annotations:
          - section: listings
            extends: GET_info
            uri: /by_id/{names}
            uri_variants: []
`
