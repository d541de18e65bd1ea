// Package prompts holds the templates sent to the task-generation service.
package prompts

import "fmt"

// planPromptTemplate instructs the generation service to break a goal down
// into a staged task list and return strict JSON with a "tasks" array.
const planPromptTemplate = `You are a professional task-planning assistant. Break the user's goal
down into a detailed, staged task list for the given period.

Goal: %s
Period: %d days
Start date: %s
End date: %s

Rules:
1. If the period is 9 days or longer, split the work into 3 stages
   (Foundation, Practice, Advancement) with a sensible number of tasks
   per stage.
2. If the period is shorter than 9 days, produce a regular task list.
3. Every task must be concrete and actionable.
4. Tasks must build on each other stage by stage.
5. Respond with JSON only, no prose before or after.

Return JSON in exactly this shape:
{
  "tasks": [
    {
      "text": "task description",
      "stage": 1,
      "stageName": "Foundation",
      "dayRange": "1-10"
    }
  ]
}`

// PlanPrompt renders the generation prompt for one goal and period.
func PlanPrompt(goal string, period int, startDate, endDate string) string {
	return fmt.Sprintf(planPromptTemplate, goal, period, startDate, endDate)
}
